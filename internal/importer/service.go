package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/pedidos/internal/importer/csvfile"
	"github.com/MrJamesThe3rd/pedidos/internal/importer/xlsx"
	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

type Service struct {
	importers map[Format]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatXLSX: xlsx.New(),
			FormatCSV:  csvfile.New(),
		},
	}
}

// Import reads every spreadsheet row of r. Nothing is applied to the ledger here.
func (s *Service) Import(format Format, r io.Reader) ([]order.Row, error) {
	importer, ok := s.importers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	rows, err := importer.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", format, err)
	}

	return rows, nil
}
