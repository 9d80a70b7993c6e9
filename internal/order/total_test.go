package order_test

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

func item(name, price string, brand order.Brand) order.LineItem {
	return order.LineItem{Name: name, Price: decimal.RequireFromString(price), Brand: brand}
}

func TestCalculator_Total(t *testing.T) {
	type args struct {
		items  []order.LineItem
		method order.PaymentMethod
	}

	type testCase struct {
		name  string
		rates order.Rates
		args  args
		want  string
	}

	tests := []testCase{
		{
			name: "Natura On Credit",
			args: args{
				items:  []order.LineItem{item("Perfume", "100", order.BrandNatura)},
				method: order.PaymentCredit,
			},
			want: "130.00",
		},
		{
			name: "Mixed Brands On Credit",
			args: args{
				items: []order.LineItem{
					item("Batom", "50", order.BrandBoticario),
					item("Creme", "10", order.BrandEudora),
					item("Sabonete", "20", order.BrandNone),
				},
				method: order.PaymentCredit,
			},
			want: "89.50",
		},
		{
			name: "Pix Has No Surcharge",
			args: args{
				items: []order.LineItem{
					item("Batom", "50", order.BrandBoticario),
					item("Creme", "10", order.BrandEudora),
				},
				method: order.PaymentPix,
			},
			want: "60.00",
		},
		{
			name: "Item Method Overrides Order Method",
			args: args{
				items: []order.LineItem{
					{Name: "A", Price: decimal.NewFromInt(100), Brand: order.BrandNatura, PaymentMethod: order.PaymentCredit},
					{Name: "B", Price: decimal.NewFromInt(100), Brand: order.BrandNatura, PaymentMethod: order.PaymentPix},
				},
			},
			want: "230.00",
		},
		{
			name:  "Custom Rates",
			rates: order.Rates{order.BrandNatura: decimal.NewFromInt(10)},
			args: args{
				items:  []order.LineItem{item("Perfume", "100", order.BrandNatura), item("Batom", "100", order.BrandBoticario)},
				method: order.PaymentCredit,
			},
			want: "210.00",
		},
		{
			name: "Rounds To Cents",
			args: args{
				items:  []order.LineItem{item("Batom", "33.33", order.BrandBoticario)},
				method: order.PaymentCredit,
			},
			want: "38.33",
		},
		{
			name: "Empty",
			args: args{method: order.PaymentCredit},
			want: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rates := tt.rates
			if rates == nil {
				rates = order.DefaultRates()
			}

			calc := order.NewCalculator(rates)
			got := calc.Total(tt.args.items, tt.args.method)

			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestCalculator_TotalMatchesSurchargeFormula(t *testing.T) {
	calc := order.NewCalculator(order.DefaultRates())
	rates := order.DefaultRates()
	rng := rand.New(rand.NewPCG(7, 11))
	brands := []order.Brand{order.BrandBoticario, order.BrandNatura, order.BrandEudora, order.BrandNone, "avon"}

	for range 200 {
		n := 1 + rng.IntN(5)
		items := make([]order.LineItem, n)
		credit := decimal.Zero
		plain := decimal.Zero

		for i := range items {
			price := decimal.New(rng.Int64N(100000), -2)
			brand := brands[rng.IntN(len(brands))]
			items[i] = order.LineItem{Name: "x", Price: price, Brand: brand}

			plain = plain.Add(price)
			credit = credit.Add(price.Mul(decimal.NewFromInt(1).Add(rates[brand].Div(decimal.NewFromInt(100)))))
		}

		assert.True(t, calc.Total(items, order.PaymentCredit).Equal(credit.Round(2)))
		assert.True(t, calc.Total(items, order.PaymentDebit).Equal(plain.Round(2)))
		assert.True(t, calc.Total(items, order.PaymentPix).Equal(plain.Round(2)))
	}
}
