package order

import (
	"github.com/shopspring/decimal"
)

// Rates maps a brand to its credit surcharge, in percent.
type Rates map[Brand]decimal.Decimal

// DefaultRates is the surcharge table used when none is configured.
func DefaultRates() Rates {
	return Rates{
		BrandBoticario: decimal.NewFromInt(15),
		BrandNatura:    decimal.NewFromInt(30),
		BrandEudora:    decimal.NewFromInt(20),
	}
}

var hundred = decimal.NewFromInt(100)

// Calculator computes order totals from line items and the surcharge table.
type Calculator struct {
	rates Rates
}

func NewCalculator(rates Rates) *Calculator {
	if rates == nil {
		rates = Rates{}
	}

	return &Calculator{rates: rates}
}

// Rates returns a copy of the configured surcharge table.
func (c *Calculator) Rates() Rates {
	out := make(Rates, len(c.rates))
	for b, r := range c.rates {
		out[b] = r
	}

	return out
}

// Total sums the item prices, adding the brand surcharge to every item paid by credit.
// An item's own payment method wins over the order-level one.
// The result is rounded to 2 decimal places.
func (c *Calculator) Total(items []LineItem, method PaymentMethod) decimal.Decimal {
	total := decimal.Zero

	for _, item := range items {
		total = total.Add(c.ItemTotal(item, method))
	}

	return total.Round(2)
}

// ItemTotal is a single item's contribution to the order total, unrounded.
func (c *Calculator) ItemTotal(item LineItem, method PaymentMethod) decimal.Decimal {
	if item.PaymentMethod != "" {
		method = item.PaymentMethod
	}

	price := item.Price
	if method != PaymentCredit {
		return price
	}

	rate, ok := c.rates[item.Brand]
	if !ok {
		return price
	}

	return price.Add(price.Mul(rate).Div(hundred))
}
