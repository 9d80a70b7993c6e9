package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/pedidos/internal/importer"
	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

// SheetName is the worksheet written to exported workbooks.
const SheetName = "Pedidos"

// BaseName is the exported file name without extension.
const BaseName = "pedidos"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Service writes the ledger as a spreadsheet, one row per line item.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Filename returns pedidos.xlsx or pedidos.csv.
func Filename(format importer.Format) string {
	return BaseName + "." + string(format)
}

// ContentType is the MIME type of an exported file.
func ContentType(format importer.Format) string {
	if format == importer.FormatCSV {
		return "text/csv; charset=utf-8"
	}

	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (s *Service) Write(w io.Writer, format importer.Format, orders []*order.Order) error {
	rows := order.ToRows(orders)

	switch format {
	case importer.FormatXLSX:
		return writeXLSX(w, rows)
	case importer.FormatCSV:
		return writeCSV(w, rows)
	}

	return fmt.Errorf("%w: %q", importer.ErrUnknownFormat, format)
}

// WriteFile creates <dir>/pedidos.<format>, replacing any previous export, and returns its path.
func (s *Service) WriteFile(dir string, format importer.Format, orders []*order.Order) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, Filename(format))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := s.Write(f, format, orders); err != nil {
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}

	return path, nil
}

func writeXLSX(w io.Writer, rows []order.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(order.Columns))
	for i, c := range order.Columns {
		header[i] = c
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		values := []any{r.Customer, r.Payment, r.Product, r.Brand, cellValue(r.Value)}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := styleSheet(f, len(rows)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

// cellValue keeps Valor numeric in the workbook. Values that are not numbers stay text.
func cellValue(v string) any {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return v
	}

	return d.InexactFloat64()
}

func styleSheet(f *excelize.File, n int) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := f.SetCellStyle(SheetName, "A1", "E1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	if n > 0 {
		money, err := f.NewStyle(&excelize.Style{NumFmt: 2})
		if err != nil {
			return fmt.Errorf("creating value style: %w", err)
		}

		last, err := excelize.CoordinatesToCellName(5, n+1)
		if err != nil {
			return err
		}

		if err := f.SetCellStyle(SheetName, "E2", last, money); err != nil {
			return fmt.Errorf("styling values: %w", err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "D", 20); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	return nil
}

func writeCSV(w io.Writer, rows []order.Row) error {
	// Excel only reads accents in UTF-8 CSV files when they start with a byte order mark.
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing byte order mark: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(order.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range rows {
		if err := cw.Write(r.Values()); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}
