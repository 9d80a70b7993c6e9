package order

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentScope decides whether the payment method belongs to the order or to each item.
type PaymentScope string

const (
	ScopeOrder PaymentScope = "order"
	ScopeItem  PaymentScope = "item"
)

// Grouping decides how imported rows become orders.
type Grouping string

const (
	// GroupByCustomer merges rows sharing customer and payment method into one order.
	GroupByCustomer Grouping = "grouped"
	// GroupNone turns every row into its own order.
	GroupNone Grouping = "flat"
)

// NumberPolicy decides what happens to blank or non-numeric amounts.
type NumberPolicy string

const (
	// NumberZero coerces invalid input to zero.
	NumberZero NumberPolicy = "zero"
	// NumberReject fails with ErrInvalidNumber.
	NumberReject NumberPolicy = "reject"
)

// OverpaymentPolicy decides what happens when a payment exceeds the outstanding balance.
type OverpaymentPolicy string

const (
	OverpaymentAllow  OverpaymentPolicy = "allow"
	OverpaymentReject OverpaymentPolicy = "reject"
	OverpaymentClamp  OverpaymentPolicy = "clamp"
)

// Policy bundles the ledger behaviour switches.
type Policy struct {
	Scope       PaymentScope
	Grouping    Grouping
	Numbers     NumberPolicy
	Overpayment OverpaymentPolicy
}

// DefaultPolicy is the behaviour used when no policy variables are set.
func DefaultPolicy() Policy {
	return Policy{
		Scope:       ScopeOrder,
		Grouping:    GroupByCustomer,
		Numbers:     NumberZero,
		Overpayment: OverpaymentAllow,
	}
}

// Validate rejects unknown switch values.
func (p Policy) Validate() error {
	switch p.Scope {
	case ScopeOrder, ScopeItem:
	default:
		return fmt.Errorf("unknown payment scope %q", p.Scope)
	}

	switch p.Grouping {
	case GroupByCustomer, GroupNone:
	default:
		return fmt.Errorf("unknown import grouping %q", p.Grouping)
	}

	switch p.Numbers {
	case NumberZero, NumberReject:
	default:
		return fmt.Errorf("unknown number policy %q", p.Numbers)
	}

	switch p.Overpayment {
	case OverpaymentAllow, OverpaymentReject, OverpaymentClamp:
	default:
		return fmt.Errorf("unknown overpayment policy %q", p.Overpayment)
	}

	return nil
}

// Parse converts user or spreadsheet input into a decimal.
// Accepted forms: "100", "100.5", "100,50", "1.234,56", "R$ 10,00".
func (p NumberPolicy) Parse(raw string) (decimal.Decimal, error) {
	d, err := parseNumber(raw)
	if err == nil {
		return d, nil
	}

	if p == NumberReject {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}

	return decimal.Zero, nil
}

var commaDecimal = regexp.MustCompile(`^-?(\d{1,3}(\.\d{3})+|\d+),\d+$`)

func parseNumber(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)

	if s == "" {
		return decimal.Zero, ErrInvalidNumber
	}

	// A comma is the decimal separator, dots are thousand separators.
	if strings.Contains(s, ",") {
		if !commaDecimal.MatchString(s) {
			return decimal.Zero, ErrInvalidNumber
		}

		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	return decimal.NewFromString(s)
}
