package view

import (
	"context"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pedidos/internal/order"
	"github.com/MrJamesThe3rd/pedidos/internal/order/store"
)

func TestPaymentStatus(t *testing.T) {
	type testCase struct {
		name        string
		paidBefore  string
		paidAfter   string
		wantContain string
	}

	tests := []testCase{
		{name: "Partial", paidBefore: "0", paidAfter: "30", wantContain: "Recorded R$ 30,00 from Ana, outstanding R$ 100,00"},
		{name: "Clamped To Balance", paidBefore: "100", paidAfter: "130", wantContain: "Recorded R$ 30,00 from Ana, order settled"},
		{name: "Nothing Applied", paidBefore: "130", paidAfter: "130", wantContain: "Nothing recorded for Ana"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := &order.Order{CustomerName: "Ana", Total: decimal.NewFromInt(130), AmountPaid: decimal.RequireFromString(tt.paidBefore)}
			after := &order.Order{CustomerName: "Ana", Total: decimal.NewFromInt(130), AmountPaid: decimal.RequireFromString(tt.paidAfter)}
			after.Settled = after.AmountPaid.GreaterThanOrEqual(after.Total)

			assert.Contains(t, paymentStatus(before, after), tt.wantContain)
		})
	}
}

func TestSelectOptions_StartBlank(t *testing.T) {
	for name, opts := range map[string][]huh.Option[string]{
		"Payment": paymentOptions(),
		"Brand":   brandOptions(),
	} {
		t.Run(name, func(t *testing.T) {
			require.NotEmpty(t, opts)
			assert.Equal(t, unselected, opts[0].Key)
			assert.Empty(t, opts[0].Value)
		})
	}
}

func TestOrderFormModel_LeavesChoicesBlank(t *testing.T) {
	ctx := context.Background()
	ledger := order.NewService(store.New(store.NewMemoryKV()), order.NewCalculator(order.DefaultRates()), order.DefaultPolicy())
	require.NoError(t, ledger.Load(ctx))

	m := NewOrderFormModel(ledger, order.NewDraft())
	assert.Empty(t, m.draft.PaymentMethod)
	assert.Empty(t, m.draft.Items[0].Brand)

	m.draft.CustomerName = "Ana"
	m.draft.Items[0].Name = "Perfume"
	m.draft.Items[0].Price = "100"

	_, err := ledger.Submit(ctx, *m.draft)

	var vErr *order.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "payment_method", vErr.Field)
}
