package order_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

func perfumeDraft() order.Draft {
	return order.Draft{
		CustomerName:  "Ana",
		PaymentMethod: "credito",
		Items: []order.DraftItem{
			{Name: "Perfume", Price: "100", Brand: "natura"},
		},
	}
}

func TestValidate(t *testing.T) {
	type testCase struct {
		name      string
		scope     order.PaymentScope
		mutate    func(d *order.Draft)
		wantField string
		wantIndex int
	}

	tests := []testCase{
		{
			name:  "Valid",
			scope: order.ScopeOrder,
		},
		{
			name:  "Blank Customer",
			scope: order.ScopeOrder,
			mutate: func(d *order.Draft) {
				d.CustomerName = "   "
			},
			wantField: "customer_name",
			wantIndex: -1,
		},
		{
			name:  "Blank Customer Wins Over Broken Items",
			scope: order.ScopeOrder,
			mutate: func(d *order.Draft) {
				d.CustomerName = ""
				d.Items = []order.DraftItem{{}}
			},
			wantField: "customer_name",
			wantIndex: -1,
		},
		{
			name:  "Missing Payment",
			scope: order.ScopeOrder,
			mutate: func(d *order.Draft) {
				d.PaymentMethod = ""
			},
			wantField: "payment_method",
			wantIndex: -1,
		},
		{
			name:  "Order Payment Ignored In Item Scope",
			scope: order.ScopeItem,
			mutate: func(d *order.Draft) {
				d.PaymentMethod = ""
				d.Items[0].PaymentMethod = "Pix"
			},
		},
		{
			name:  "Missing Item Payment In Item Scope",
			scope: order.ScopeItem,
			mutate: func(d *order.Draft) {
				d.Items = append(d.Items, order.DraftItem{Name: "Batom", Price: "10", Brand: "eudora"})
				d.Items[0].PaymentMethod = "pix"
			},
			wantField: "payment_method",
			wantIndex: 1,
		},
		{
			name:  "Blank Product Name",
			scope: order.ScopeOrder,
			mutate: func(d *order.Draft) {
				d.Items[0].Name = " "
			},
			wantField: "name",
			wantIndex: 0,
		},
		{
			name:  "Zero Price",
			scope: order.ScopeOrder,
			mutate: func(d *order.Draft) {
				d.Items[0].Price = "0"
			},
			wantField: "price",
			wantIndex: 0,
		},
		{
			name:  "Non Numeric Price",
			scope: order.ScopeOrder,
			mutate: func(d *order.Draft) {
				d.Items[0].Price = "abc"
			},
			wantField: "price",
			wantIndex: 0,
		},
		{
			name:  "Comma Price Is Valid",
			scope: order.ScopeOrder,
			mutate: func(d *order.Draft) {
				d.Items[0].Price = "99,90"
			},
		},
		{
			name:  "Missing Brand",
			scope: order.ScopeOrder,
			mutate: func(d *order.Draft) {
				d.Items[0].Brand = ""
			},
			wantField: "brand",
			wantIndex: 0,
		},
		{
			name:  "Accented Brand Is Valid",
			scope: order.ScopeOrder,
			mutate: func(d *order.Draft) {
				d.Items[0].Brand = "Boticário"
			},
		},
		{
			name:  "No Items",
			scope: order.ScopeOrder,
			mutate: func(d *order.Draft) {
				d.Items = nil
			},
			wantField: "items",
			wantIndex: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := perfumeDraft()
			if tt.mutate != nil {
				tt.mutate(&d)
			}

			err := order.Validate(d, tt.scope)

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var vErr *order.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Equal(t, tt.wantIndex, vErr.Index)
			assert.NotEmpty(t, vErr.Error())
		})
	}
}

func TestNewDraft(t *testing.T) {
	d := order.NewDraft()
	require.Len(t, d.Items, 1)
	assert.Equal(t, order.DraftItem{}, d.Items[0])
	assert.False(t, d.Editing())

	d.CustomerName = "Ana"
	d.AddItem()
	assert.Len(t, d.Items, 2)

	d.Reset()
	assert.Empty(t, d.CustomerName)
	assert.Len(t, d.Items, 1)
}

func TestDraftFromOrder(t *testing.T) {
	o := &order.Order{
		ID:            uuid.New(),
		CustomerName:  "Bia",
		PaymentMethod: order.PaymentPix,
		LineItems: []order.LineItem{
			{Name: "Batom", Price: decimal.RequireFromString("12.5"), Brand: order.BrandEudora},
		},
	}

	d := order.DraftFromOrder(o)

	assert.True(t, d.Editing())
	assert.Equal(t, o.ID, d.EditingID)
	assert.Equal(t, "Bia", d.CustomerName)
	assert.Equal(t, "pix", d.PaymentMethod)
	require.Len(t, d.Items, 1)
	assert.Equal(t, order.DraftItem{Name: "Batom", Price: "12.5", Brand: "eudora"}, d.Items[0])
	assert.NoError(t, order.Validate(d, order.ScopeOrder))
}
