package order

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DraftItem is a line item as typed into the order form. Price is raw text.
type DraftItem struct {
	Name          string `json:"name"`
	Price         string `json:"price"`
	Brand         string `json:"brand"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

// Draft is the in-progress order. A non-nil EditingID turns submit into an edit.
type Draft struct {
	CustomerName  string      `json:"customer_name"`
	PaymentMethod string      `json:"payment_method"`
	Items         []DraftItem `json:"items"`
	EditingID     uuid.UUID   `json:"-"`
}

// NewDraft returns an empty draft with one blank line item.
func NewDraft() Draft {
	return Draft{Items: []DraftItem{{}}}
}

// Reset clears the draft back to one blank line item.
func (d *Draft) Reset() {
	*d = NewDraft()
}

// AddItem appends a blank line item.
func (d *Draft) AddItem() {
	d.Items = append(d.Items, DraftItem{})
}

// Editing reports whether submitting the draft replaces an existing order.
func (d *Draft) Editing() bool {
	return d.EditingID != uuid.Nil
}

// DraftFromOrder pre-fills a draft to edit o.
func DraftFromOrder(o *Order) Draft {
	d := Draft{
		CustomerName:  o.CustomerName,
		PaymentMethod: string(o.PaymentMethod),
		Items:         make([]DraftItem, 0, len(o.LineItems)),
		EditingID:     o.ID,
	}

	for _, item := range o.LineItems {
		d.Items = append(d.Items, DraftItem{
			Name:          item.Name,
			Price:         item.Price.String(),
			Brand:         string(item.Brand),
			PaymentMethod: string(item.PaymentMethod),
		})
	}

	if len(d.Items) == 0 {
		d.Items = append(d.Items, DraftItem{})
	}

	return d
}

// ValidationError describes the first problem found in a draft.
// Index is the line item position, or -1 for order-level fields.
type ValidationError struct {
	Field  string
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return e.Reason
	}

	return fmt.Sprintf("item %d: %s", e.Index+1, e.Reason)
}

func invalid(field string, index int, reason string) *ValidationError {
	return &ValidationError{Field: field, Index: index, Reason: reason}
}

// Validate checks the draft and stops at the first failure.
func Validate(d Draft, scope PaymentScope) error {
	if strings.TrimSpace(d.CustomerName) == "" {
		return invalid("customer_name", -1, "customer name is required")
	}

	if scope == ScopeOrder && !NormalizePayment(d.PaymentMethod).Valid() {
		return invalid("payment_method", -1, "choose a payment method")
	}

	if len(d.Items) == 0 {
		return invalid("items", -1, "add at least one product")
	}

	for i, item := range d.Items {
		if strings.TrimSpace(item.Name) == "" {
			return invalid("name", i, "product name is required")
		}

		price, err := parseNumber(item.Price)
		if err != nil || !price.IsPositive() {
			return invalid("price", i, "enter a valid price")
		}

		if !NormalizeBrand(item.Brand).Valid() {
			return invalid("brand", i, "select a brand")
		}

		if scope == ScopeItem && !NormalizePayment(item.PaymentMethod).Valid() {
			return invalid("payment_method", i, "choose a payment method")
		}
	}

	return nil
}

// lineItems converts draft items, coercing prices with the number policy.
func (d Draft) lineItems(scope PaymentScope, numbers NumberPolicy) ([]LineItem, error) {
	items := make([]LineItem, 0, len(d.Items))

	for i, di := range d.Items {
		price, err := numbers.Parse(di.Price)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}

		item := LineItem{
			Name:  strings.TrimSpace(di.Name),
			Price: price,
			Brand: NormalizeBrand(di.Brand),
		}

		if scope == ScopeItem {
			item.PaymentMethod = NormalizePayment(di.PaymentMethod)
		}

		items = append(items, item)
	}

	return items, nil
}

// orderMethod is the order-level payment method: the selected one, or the first item's in item scope.
func orderMethod(scope PaymentScope, selected PaymentMethod, items []LineItem) PaymentMethod {
	if scope == ScopeItem && len(items) > 0 {
		return items[0].PaymentMethod
	}

	return selected
}

// quote computes the running total of an unvalidated draft. Bad prices count as zero.
func (d Draft) quote(calc *Calculator, scope PaymentScope) decimal.Decimal {
	items, _ := d.lineItems(scope, NumberZero)
	method := orderMethod(scope, NormalizePayment(d.PaymentMethod), items)

	return calc.Total(items, method)
}
