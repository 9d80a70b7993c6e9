package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrInvalidAmount = errors.New("payment amount must be greater than zero")
	ErrInvalidNumber = errors.New("invalid number")
	ErrOverpayment   = errors.New("payment exceeds outstanding balance")
)

// Brand is the cosmetics brand of a line item. Brands drive the credit surcharge.
type Brand string

const (
	BrandBoticario Brand = "boticario"
	BrandNatura    Brand = "natura"
	BrandEudora    Brand = "eudora"
	BrandNone      Brand = "none"
)

// Brands lists the selectable brands in display order.
var Brands = []Brand{BrandBoticario, BrandNatura, BrandEudora, BrandNone}

func (b Brand) Valid() bool {
	switch b {
	case BrandBoticario, BrandNatura, BrandEudora, BrandNone:
		return true
	}

	return false
}

func (b Brand) Label() string {
	switch b {
	case BrandBoticario:
		return "Boticário"
	case BrandNatura:
		return "Natura"
	case BrandEudora:
		return "Eudora"
	case BrandNone:
		return "Sem marca"
	}

	return string(b)
}

// PaymentMethod is how the customer pays an order (or a single item).
type PaymentMethod string

const (
	PaymentPix    PaymentMethod = "pix"
	PaymentDebit  PaymentMethod = "debito"
	PaymentCredit PaymentMethod = "credito"
)

// PaymentMethods lists the selectable methods in display order.
var PaymentMethods = []PaymentMethod{PaymentPix, PaymentDebit, PaymentCredit}

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentPix, PaymentDebit, PaymentCredit:
		return true
	}

	return false
}

func (p PaymentMethod) Label() string {
	switch p {
	case PaymentPix:
		return "Pix"
	case PaymentDebit:
		return "Débito"
	case PaymentCredit:
		return "Crédito"
	}

	return string(p)
}

// LineItem is one product entry within an order.
type LineItem struct {
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Brand         Brand           `json:"brand"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"` // per-item scope only
}

// Order is a customer's purchase record with its payment status.
type Order struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"customer_name"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	LineItems     []LineItem      `json:"line_items"`
	Total         decimal.Decimal `json:"total"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Settled       bool            `json:"settled"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

// Balance returns what is still owed. Negative when overpaid.
func (o *Order) Balance() decimal.Decimal {
	return o.Total.Sub(o.AmountPaid)
}

// HasBrand reports whether any line item is of the given brand.
func (o *Order) HasBrand(b Brand) bool {
	for _, item := range o.LineItems {
		if item.Brand == b {
			return true
		}
	}

	return false
}

func (o *Order) refreshSettled() {
	o.Settled = o.AmountPaid.GreaterThanOrEqual(o.Total)
}

func (o *Order) clone() *Order {
	c := *o
	c.LineItems = append([]LineItem(nil), o.LineItems...)

	if o.UpdatedAt != nil {
		t := *o.UpdatedAt
		c.UpdatedAt = &t
	}

	return &c
}

func cloneAll(orders []*Order) []*Order {
	out := make([]*Order, len(orders))
	for i, o := range orders {
		out[i] = o.clone()
	}

	return out
}
