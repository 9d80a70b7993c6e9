package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

type ordersState int

const (
	ordersStateBrowse ordersState = iota
	ordersStatePay
	ordersStateDelete
)

type OrdersModel struct {
	CommonModel
	ledger *order.Service

	state  ordersState
	table  table.Model
	orders []*order.Order
	form   *huh.Form

	paymentFilterIdx int
	brandFilterIdx   int
	filter           order.Filter

	status string

	// Form bindings, behind pointers so copies of the model share them.
	amount  *string
	confirm *bool
}

func NewOrdersModel(ledger *order.Service) OrdersModel {
	columns := []table.Column{
		{Title: "Cliente", Width: 20},
		{Title: "Pagamento", Width: 10},
		{Title: "Produtos", Width: 30},
		{Title: "Total", Width: 14},
		{Title: "Pago", Width: 14},
		{Title: "Saldo", Width: 14},
		{Title: "Status", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := OrdersModel{
		ledger:  ledger,
		table:   t,
		amount:  new(string),
		confirm: new(bool),
	}
	m.refresh()

	return m
}

func (m OrdersModel) Title() string { return "Orders" }

func (m OrdersModel) ShortHelp() string {
	switch m.state {
	case ordersStatePay, ordersStateDelete:
		return "Enter: confirm | Esc: cancel"
	}

	return "Esc: back | $: payment | e: edit | x: delete | p: payment filter | b: brand filter"
}

func (m OrdersModel) Init() tea.Cmd {
	return nil
}

func (m OrdersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerWriteMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.closeForm()
		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil
	}

	switch m.state {
	case ordersStatePay, ordersStateDelete:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m OrdersModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.refresh()
			return m, nil
		case "p":
			m.paymentFilterIdx = (m.paymentFilterIdx + 1) % (len(order.PaymentMethods) + 1)
			m.applyFilter()

			return m, nil
		case "b":
			m.brandFilterIdx = (m.brandFilterIdx + 1) % (len(order.Brands) + 1)
			m.applyFilter()

			return m, nil
		case "$":
			return m.openPayment()
		case "x":
			return m.openDelete()
		case "e":
			if o := m.selected(); o != nil {
				return m, func() tea.Msg { return EditOrderMsg{Order: o} }
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m OrdersModel) openPayment() (tea.Model, tea.Cmd) {
	o := m.selected()
	if o == nil {
		return m, nil
	}

	*m.amount = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Payment from " + o.CustomerName).
				Description("Outstanding " + FormatAmount(o.Balance())).
				Placeholder("0,00").
				Value(m.amount).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("enter an amount")
					}

					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = ordersStatePay
	m.table.Blur()

	return m, m.form.Init()
}

func (m OrdersModel) openDelete() (tea.Model, tea.Cmd) {
	o := m.selected()
	if o == nil {
		return m, nil
	}

	*m.confirm = false

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete the order of %s (%s)?", o.CustomerName, FormatAmount(o.Total))).
				Affirmative("Delete").
				Negative("Keep").
				Value(m.confirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = ordersStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m OrdersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateAborted {
		m.closeForm()
		return m, nil
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	o := m.selected()
	if o == nil {
		m.closeForm()
		return m, nil
	}

	if m.state == ordersStateDelete {
		if !*m.confirm {
			m.closeForm()
			return m, nil
		}

		return m, m.removeCmd(o.ID, o.CustomerName)
	}

	amount, err := m.ledger.Policy().Numbers.Parse(*m.amount)
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		m.closeForm()

		return m, nil
	}

	if !amount.IsPositive() {
		m.status = "Nothing recorded: " + order.ErrInvalidAmount.Error()
		m.closeForm()

		return m, nil
	}

	return m, m.payCmd(o, amount)
}

func (m *OrdersModel) closeForm() {
	m.state = ordersStateBrowse
	m.form = nil
	m.table.Focus()
}

func (m OrdersModel) selected() *order.Order {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.orders) {
		return nil
	}

	return m.orders[idx]
}

func (m *OrdersModel) applyFilter() {
	m.filter = order.Filter{}

	if m.paymentFilterIdx > 0 {
		m.filter.PaymentMethod = order.PaymentMethods[m.paymentFilterIdx-1]
	}

	if m.brandFilterIdx > 0 {
		m.filter.Brand = order.Brands[m.brandFilterIdx-1]
	}

	m.refresh()
}

func (m *OrdersModel) refresh() {
	m.orders = m.ledger.List(m.filter)

	rows := make([]table.Row, 0, len(m.orders))
	for _, o := range m.orders {
		status := "Aberto"
		if o.Settled {
			status = "Pago"
		}

		rows = append(rows, table.Row{
			o.CustomerName,
			o.PaymentMethod.Label(),
			productSummary(o),
			FormatAmount(o.Total),
			FormatAmount(o.AmountPaid),
			FormatAmount(o.Balance()),
			status,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func productSummary(o *order.Order) string {
	names := make([]string, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		names = append(names, item.Name)
	}

	return strings.Join(names, ", ")
}

func (m OrdersModel) View() string {
	paymentLabel := "All"
	if m.filter.PaymentMethod != "" {
		paymentLabel = m.filter.PaymentMethod.Label()
	}

	brandLabel := "All"
	if m.filter.Brand != "" {
		brandLabel = m.filter.Brand.Label()
	}

	header := fmt.Sprintf(
		"Filter: [p] Payment: %s | [b] Brand: %s",
		activeStyle(paymentLabel),
		activeStyle(brandLabel),
	)

	total, outstanding := decimal.Zero, decimal.Zero
	for _, o := range m.orders {
		total = total.Add(o.Total)
		outstanding = outstanding.Add(o.Balance())
	}

	footer := fmt.Sprintf("%d orders | Total %s | Outstanding %s",
		len(m.orders), FormatAmount(total), FormatAmount(outstanding))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		lipgloss.NewStyle().Faint(true).Render(footer),
	)

	if m.state != ordersStateBrowse && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type ledgerWriteMsg struct {
	status string
	err    error
}

func (m OrdersModel) payCmd(before *order.Order, amount decimal.Decimal) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		after, err := m.ledger.ApplyPayment(ctx, before.ID, amount)
		if err != nil {
			return ledgerWriteMsg{err: err}
		}

		return ledgerWriteMsg{status: paymentStatus(before, after)}
	}
}

// paymentStatus reports the amount actually applied, not the amount typed.
func paymentStatus(before, after *order.Order) string {
	applied := after.AmountPaid.Sub(before.AmountPaid)

	switch {
	case applied.IsZero():
		return fmt.Sprintf("Nothing recorded for %s, balance %s", after.CustomerName, FormatAmount(after.Balance()))
	case after.Settled:
		return fmt.Sprintf("Recorded %s from %s, order settled", FormatAmount(applied), after.CustomerName)
	}

	return fmt.Sprintf("Recorded %s from %s, outstanding %s", FormatAmount(applied), after.CustomerName, FormatAmount(after.Balance()))
}

func (m OrdersModel) removeCmd(id uuid.UUID, customer string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.ledger.Remove(ctx, id); err != nil {
			return ledgerWriteMsg{err: err}
		}

		return ledgerWriteMsg{status: "Deleted the order of " + customer}
	}
}
