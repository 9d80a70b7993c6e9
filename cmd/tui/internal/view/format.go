package view

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const storeTimeout = 5 * time.Second

// FormatAmount renders a value as Brazilian currency, e.g. "R$ 1.234,50".
func FormatAmount(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}

	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")

	var b strings.Builder

	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}

		b.WriteRune(r)
	}

	return sign + "R$ " + b.String() + "," + frac
}

// FormatDate formats a time.Time as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// StoreCtx returns a context with a standard timeout for ledger writes.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
