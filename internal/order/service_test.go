package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

func newLoadedService(t *testing.T, policy order.Policy, seed ...*order.Order) (*order.Service, *order.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := order.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(seed, nil)

	svc := order.NewService(repo, order.NewCalculator(order.DefaultRates()), policy)
	require.NoError(t, svc.Load(context.Background()))

	return svc, repo
}

func existingOrder(total, paid string) *order.Order {
	o := &order.Order{
		ID:            uuid.New(),
		CustomerName:  "Ana",
		PaymentMethod: order.PaymentPix,
		LineItems:     []order.LineItem{item("Perfume", total, order.BrandNatura)},
		Total:         decimal.RequireFromString(total),
		AmountPaid:    decimal.RequireFromString(paid),
		CreatedAt:     time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	o.Settled = o.AmountPaid.GreaterThanOrEqual(o.Total)

	return o
}

func TestService_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := order.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(nil, errors.New("corrupt slot"))

	svc := order.NewService(repo, order.NewCalculator(order.DefaultRates()), order.DefaultPolicy())

	err := svc.Load(context.Background())
	assert.Error(t, err)
	assert.Empty(t, svc.List(order.Filter{}))
}

func TestService_Submit(t *testing.T) {
	type testCase struct {
		name      string
		draft     order.Draft
		setupMock func(m *order.MockRepository)
		wantTotal string
		wantErr   bool
	}

	tests := []testCase{
		{
			name:  "New Order",
			draft: perfumeDraft(),
			setupMock: func(m *order.MockRepository) {
				m.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, orders []*order.Order) error {
						require.Len(t, orders, 2)
						assert.Equal(t, "Ana", orders[0].CustomerName)
						return nil
					})
			},
			wantTotal: "130.00",
		},
		{
			name: "Invalid Draft Skips Save",
			draft: order.Draft{
				CustomerName:  "",
				PaymentMethod: "pix",
				Items:         []order.DraftItem{{Name: "Batom", Price: "10", Brand: "eudora"}},
			},
			wantErr: true,
		},
		{
			name:  "Repository Error",
			draft: perfumeDraft(),
			setupMock: func(m *order.MockRepository) {
				m.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := existingOrder("50", "0")
			svc, repo := newLoadedService(t, order.DefaultPolicy(), seed)

			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := svc.Submit(context.Background(), tt.draft)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				assert.Len(t, svc.List(order.Filter{}), 1)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, tt.wantTotal, got.Total.StringFixed(2))
			assert.False(t, got.Settled)
			assert.False(t, got.CreatedAt.IsZero())

			list := svc.List(order.Filter{})
			require.Len(t, list, 2)
			assert.Equal(t, got.ID, list[0].ID)
			assert.Equal(t, seed.ID, list[1].ID)
		})
	}
}

func TestService_Submit_EditKeepsAmountPaid(t *testing.T) {
	seed := existingOrder("100", "40")
	svc, repo := newLoadedService(t, order.DefaultPolicy(), existingOrder("10", "0"), seed)

	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	d := order.DraftFromOrder(seed)
	d.PaymentMethod = "credito"
	d.Items[0].Price = "20"

	got, err := svc.Submit(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, seed.ID, got.ID)
	assert.Equal(t, seed.CreatedAt, got.CreatedAt)
	assert.NotNil(t, got.UpdatedAt)
	assert.Equal(t, "26.00", got.Total.StringFixed(2))
	assert.Equal(t, "40.00", got.AmountPaid.StringFixed(2))
	assert.True(t, got.Settled)

	list := svc.List(order.Filter{})
	require.Len(t, list, 2)
	assert.Equal(t, seed.ID, list[1].ID, "edit keeps ledger position")
}

func TestService_Submit_EditUnknownOrder(t *testing.T) {
	svc, _ := newLoadedService(t, order.DefaultPolicy())

	d := perfumeDraft()
	d.EditingID = uuid.New()

	_, err := svc.Submit(context.Background(), d)
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestService_ApplyPayment(t *testing.T) {
	seed := existingOrder("50", "0")
	svc, repo := newLoadedService(t, order.DefaultPolicy(), seed)

	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	got, err := svc.ApplyPayment(context.Background(), seed.ID, decimal.NewFromInt(30))
	require.NoError(t, err)
	assert.Equal(t, "30.00", got.AmountPaid.StringFixed(2))
	assert.False(t, got.Settled)

	got, err = svc.ApplyPayment(context.Background(), seed.ID, decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.Equal(t, "50.00", got.AmountPaid.StringFixed(2))
	assert.True(t, got.Settled)
	assert.True(t, got.Balance().IsZero())
}

func TestService_ApplyPayment_NonPositive(t *testing.T) {
	type testCase struct {
		name    string
		numbers order.NumberPolicy
		amount  decimal.Decimal
		wantErr error
	}

	tests := []testCase{
		{name: "Zero Ignored", numbers: order.NumberZero, amount: decimal.Zero},
		{name: "Negative Ignored", numbers: order.NumberZero, amount: decimal.NewFromInt(-5)},
		{name: "Zero Rejected", numbers: order.NumberReject, amount: decimal.Zero, wantErr: order.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := order.DefaultPolicy()
			policy.Numbers = tt.numbers

			seed := existingOrder("50", "10")
			svc, _ := newLoadedService(t, policy, seed)

			got, err := svc.ApplyPayment(context.Background(), seed.ID, tt.amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "10.00", got.AmountPaid.StringFixed(2))
			}

			stored, err := svc.Get(seed.ID)
			require.NoError(t, err)
			assert.Equal(t, "10.00", stored.AmountPaid.StringFixed(2))
		})
	}
}

func TestService_ApplyPayment_Overpayment(t *testing.T) {
	type testCase struct {
		name     string
		policy   order.OverpaymentPolicy
		wantPaid string
		wantErr  error
	}

	tests := []testCase{
		{name: "Allow", policy: order.OverpaymentAllow, wantPaid: "80.00"},
		{name: "Clamp", policy: order.OverpaymentClamp, wantPaid: "50.00"},
		{name: "Reject", policy: order.OverpaymentReject, wantPaid: "10.00", wantErr: order.ErrOverpayment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := order.DefaultPolicy()
			policy.Overpayment = tt.policy

			seed := existingOrder("50", "10")
			svc, repo := newLoadedService(t, policy, seed)

			if tt.wantErr == nil {
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			}

			_, err := svc.ApplyPayment(context.Background(), seed.ID, decimal.NewFromInt(70))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			stored, err := svc.Get(seed.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPaid, stored.AmountPaid.StringFixed(2))
			assert.True(t, stored.Settled || tt.wantErr != nil)
		})
	}
}

func TestService_ApplyPayment_ClampOnSettledOrder(t *testing.T) {
	policy := order.DefaultPolicy()
	policy.Overpayment = order.OverpaymentClamp

	seed := existingOrder("130", "130")
	svc, _ := newLoadedService(t, policy, seed)

	got, err := svc.ApplyPayment(context.Background(), seed.ID, decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Equal(t, "130.00", got.AmountPaid.StringFixed(2))
	assert.True(t, got.Settled)
	assert.Nil(t, got.UpdatedAt)

	stored, err := svc.Get(seed.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.UpdatedAt)
}

func TestService_Submit_EditReturnsStoredOrder(t *testing.T) {
	seed := existingOrder("100", "0")
	svc, repo := newLoadedService(t, order.DefaultPolicy(), seed)

	// The order disappears right after the edit is saved.
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	d := order.DraftFromOrder(seed)
	d.Items[0].Price = "80"

	got, err := svc.Submit(context.Background(), d)
	require.NoError(t, err)
	require.NoError(t, svc.Remove(context.Background(), seed.ID))

	assert.Equal(t, seed.ID, got.ID)
	assert.Equal(t, "80.00", got.Total.StringFixed(2))

	edited, err := svc.Replace(context.Background(), seed.ID, &order.Order{})
	assert.ErrorIs(t, err, order.ErrNotFound)
	assert.Nil(t, edited)
}

func TestService_ApplyPayment_SaveFailureKeepsLedger(t *testing.T) {
	seed := existingOrder("50", "0")
	svc, repo := newLoadedService(t, order.DefaultPolicy(), seed)

	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("quota exceeded"))

	_, err := svc.ApplyPayment(context.Background(), seed.ID, decimal.NewFromInt(50))
	require.Error(t, err)

	stored, err := svc.Get(seed.ID)
	require.NoError(t, err)
	assert.True(t, stored.AmountPaid.IsZero())
	assert.False(t, stored.Settled)
}

func TestService_Remove(t *testing.T) {
	first := existingOrder("10", "0")
	second := existingOrder("20", "0")
	svc, repo := newLoadedService(t, order.DefaultPolicy(), first, second)

	repo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, orders []*order.Order) error {
			require.Len(t, orders, 1)
			assert.Equal(t, second.ID, orders[0].ID)
			return nil
		})

	require.NoError(t, svc.Remove(context.Background(), first.ID))

	err := svc.Remove(context.Background(), uuid.New())
	assert.ErrorIs(t, err, order.ErrNotFound)

	_, err = svc.Get(first.ID)
	assert.ErrorIs(t, err, order.ErrNotFound)
	assert.Len(t, svc.List(order.Filter{}), 1)
}

func TestService_Import(t *testing.T) {
	seed := existingOrder("50", "0")
	svc, repo := newLoadedService(t, order.DefaultPolicy(), seed)

	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	imported, err := svc.Import(context.Background(), sampleRows())
	require.NoError(t, err)
	require.Len(t, imported, 3)

	list := svc.List(order.Filter{})
	require.Len(t, list, 4)
	assert.Equal(t, imported[0].ID, list[0].ID)
	assert.Equal(t, seed.ID, list[3].ID)

	for _, o := range imported {
		assert.NotEqual(t, uuid.Nil, o.ID)
		assert.False(t, o.CreatedAt.IsZero())
	}
}

func TestService_Import_Empty(t *testing.T) {
	svc, _ := newLoadedService(t, order.DefaultPolicy())

	imported, err := svc.Import(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, imported)
}

func TestService_ListFilterAndExport(t *testing.T) {
	pix := existingOrder("10", "0")
	credit := existingOrder("20", "0")
	credit.PaymentMethod = order.PaymentCredit
	svc, _ := newLoadedService(t, order.DefaultPolicy(), pix, credit)

	got := svc.List(order.NewFilter("pix", ""))
	require.Len(t, got, 1)
	assert.Equal(t, pix.ID, got[0].ID)

	got[0].CustomerName = "changed"
	stored, err := svc.Get(pix.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.CustomerName)

	rows := svc.Export()
	require.Len(t, rows, 2)
	assert.Equal(t, "credito", rows[1].Payment)
}

func TestService_Quote(t *testing.T) {
	svc, _ := newLoadedService(t, order.DefaultPolicy())

	d := perfumeDraft()
	d.Items = append(d.Items, order.DraftItem{Name: "Batom", Price: "not yet", Brand: "eudora"})

	assert.Equal(t, "130.00", svc.Quote(d).StringFixed(2))
}
