package order

import (
	"fmt"
	"strings"
)

// Column headers shared by spreadsheet import and export.
const (
	ColCustomer = "Cliente"
	ColPayment  = "Pagamento"
	ColProduct  = "Produto"
	ColBrand    = "Marca"
	ColValue    = "Valor"
)

// Columns is the export column order.
var Columns = []string{ColCustomer, ColPayment, ColProduct, ColBrand, ColValue}

// Row is one spreadsheet line: a single line item with its order's customer and payment.
type Row struct {
	Customer string
	Payment  string
	Product  string
	Brand    string
	Value    string
}

// Values returns the cells in Columns order.
func (r Row) Values() []string {
	return []string{r.Customer, r.Payment, r.Product, r.Brand, r.Value}
}

// OrdersFromRows builds orders from spreadsheet rows under the given policy.
// No schema validation happens: missing cells become blank fields.
func OrdersFromRows(rows []Row, calc *Calculator, policy Policy) ([]*Order, error) {
	switch policy.Grouping {
	case GroupNone:
		return flatOrders(rows, calc, policy)
	default:
		return groupedOrders(rows, calc, policy)
	}
}

func rowItem(r Row, rowNum int, policy Policy) (LineItem, error) {
	price, err := policy.Numbers.Parse(r.Value)
	if err != nil {
		return LineItem{}, fmt.Errorf("row %d: %w", rowNum, err)
	}

	item := LineItem{
		Name:  strings.TrimSpace(r.Product),
		Price: price,
		Brand: NormalizeBrand(r.Brand),
	}

	if policy.Scope == ScopeItem {
		item.PaymentMethod = NormalizePayment(r.Payment)
	}

	return item, nil
}

func flatOrders(rows []Row, calc *Calculator, policy Policy) ([]*Order, error) {
	orders := make([]*Order, 0, len(rows))

	for i, r := range rows {
		item, err := rowItem(r, i+1, policy)
		if err != nil {
			return nil, err
		}

		o := &Order{
			CustomerName:  strings.TrimSpace(r.Customer),
			PaymentMethod: NormalizePayment(r.Payment),
			LineItems:     []LineItem{item},
		}
		o.Total = calc.Total(o.LineItems, o.PaymentMethod)
		o.refreshSettled()

		orders = append(orders, o)
	}

	return orders, nil
}

func groupedOrders(rows []Row, calc *Calculator, policy Policy) ([]*Order, error) {
	type groupKey struct {
		customer string
		payment  PaymentMethod
	}

	index := make(map[groupKey]*Order)

	var orders []*Order

	for i, r := range rows {
		item, err := rowItem(r, i+1, policy)
		if err != nil {
			return nil, err
		}

		k := groupKey{
			customer: strings.TrimSpace(r.Customer),
			payment:  NormalizePayment(r.Payment),
		}

		o, found := index[k]
		if !found {
			o = &Order{
				CustomerName:  k.customer,
				PaymentMethod: k.payment,
			}
			index[k] = o
			orders = append(orders, o)
		}

		o.LineItems = append(o.LineItems, item)
	}

	for _, o := range orders {
		o.Total = calc.Total(o.LineItems, o.PaymentMethod)
		o.refreshSettled()
	}

	return orders, nil
}

// ToRows flattens orders into one row per line item, in ledger order.
func ToRows(orders []*Order) []Row {
	var rows []Row

	for _, o := range orders {
		for _, item := range o.LineItems {
			payment := o.PaymentMethod
			if item.PaymentMethod != "" {
				payment = item.PaymentMethod
			}

			rows = append(rows, Row{
				Customer: o.CustomerName,
				Payment:  string(payment),
				Product:  item.Name,
				Brand:    string(item.Brand),
				Value:    item.Price.String(),
			})
		}
	}

	return rows
}

// RowsFromRecords maps a table of cells to rows. The first non-blank record is the header;
// headers are matched ignoring case, accents and surrounding spaces, and unknown columns
// are ignored. Blank records are skipped and short records yield blank fields.
func RowsFromRecords(records [][]string) []Row {
	header := -1

	for i, rec := range records {
		if !blankRecord(rec) {
			header = i
			break
		}
	}

	if header < 0 {
		return nil
	}

	index := make(map[string]int)

	for i, name := range records[header] {
		key := Fold(name)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	cell := func(rec []string, col string) string {
		i, ok := index[Fold(col)]
		if !ok || i >= len(rec) {
			return ""
		}

		return strings.TrimSpace(rec[i])
	}

	var rows []Row

	for _, rec := range records[header+1:] {
		if blankRecord(rec) {
			continue
		}

		rows = append(rows, Row{
			Customer: cell(rec, ColCustomer),
			Payment:  cell(rec, ColPayment),
			Product:  cell(rec, ColProduct),
			Brand:    cell(rec, ColBrand),
			Value:    cell(rec, ColValue),
		})
	}

	return rows
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
