package order

// Filter narrows the ledger view. Zero values mean "any".
type Filter struct {
	PaymentMethod PaymentMethod
	Brand         Brand
}

// NewFilter builds a filter from free text, normalizing like imports do.
func NewFilter(payment, brand string) Filter {
	return Filter{
		PaymentMethod: NormalizePayment(payment),
		Brand:         NormalizeBrand(brand),
	}
}

func (f Filter) Match(o *Order) bool {
	if f.PaymentMethod != "" && o.PaymentMethod != f.PaymentMethod {
		return false
	}

	if f.Brand != "" && !o.HasBrand(f.Brand) {
		return false
	}

	return true
}

// Apply returns the matching orders in ledger order. The input is not modified.
func (f Filter) Apply(orders []*Order) []*Order {
	out := make([]*Order, 0, len(orders))

	for _, o := range orders {
		if f.Match(o) {
			out = append(out, o)
		}
	}

	return out
}
