package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pedidos/internal/export"
	"github.com/MrJamesThe3rd/pedidos/internal/importer"
	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

type exportOptions struct {
	format  importer.Format
	dir     string
	payment string
	brand   string
}

type ExportModel struct {
	CommonModel
	ledger        *order.Service
	exportService *export.Service

	state   exportState
	opts    *exportOptions
	form    *huh.Form
	spinner spinner.Model

	path  string
	count int
	err   error
}

func NewExportModel(ledger *order.Service, svc *export.Service, dir string) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ExportModel{
		ledger:        ledger,
		exportService: svc,
		opts:          &exportOptions{format: importer.FormatXLSX, dir: dir},
		spinner:       s,
	}
	m.form = m.buildForm()

	return m
}

func (m ExportModel) Title() string { return "Export Orders" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateAborted {
		return m, Back
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(*m.opts))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.path = result.path
		m.count = result.count

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) buildForm() *huh.Form {
	payments := []huh.Option[string]{huh.NewOption("All", "")}
	for _, p := range order.PaymentMethods {
		payments = append(payments, huh.NewOption(p.Label(), string(p)))
	}

	brands := []huh.Option[string]{huh.NewOption("All", "")}
	for _, b := range order.Brands {
		brands = append(brands, huh.NewOption(b.Label(), string(b)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[importer.Format]().
				Title("Format").
				Options(
					huh.NewOption("Excel (.xlsx)", importer.FormatXLSX),
					huh.NewOption("CSV (.csv)", importer.FormatCSV),
				).
				Value(&m.opts.format),
			huh.NewInput().
				Title("Output Directory").
				Description("Directory will be created if it doesn't exist").
				Placeholder(".").
				Value(&m.opts.dir),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Payment").Options(payments...).Value(&m.opts.payment),
			huh.NewSelect[string]().Title("Brand").Options(brands...).Value(&m.opts.brand),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Writing %s...", m.spinner.View(), export.Filename(m.opts.format)),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("%d orders written to %s", m.count, m.path),
		),
	)
}

type exportResultMsg struct {
	path  string
	count int
	err   error
}

func (m ExportModel) runExportCmd(opts exportOptions) tea.Cmd {
	return func() tea.Msg {
		orders := m.ledger.List(order.NewFilter(opts.payment, opts.brand))

		dir := opts.dir
		if dir == "" {
			dir = "."
		}

		path, err := m.exportService.WriteFile(dir, opts.format, orders)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{path: path, count: len(orders)}
	}
}
