package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"

	enc "github.com/MrJamesThe3rd/pedidos/internal/encoding"
	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

// Importer reads CSV sheets saved by Excel or Google Sheets, in any common encoding,
// separated by ',' or ';'.
type Importer struct{}

func New() *Importer {
	return &Importer{}
}

func (i *Importer) Parse(r io.Reader) ([]order.Row, error) {
	utf8r, delim, err := enc.NewCSVReader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return order.RowsFromRecords(records), nil
}
