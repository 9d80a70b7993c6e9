package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

type formAction string

const (
	actionSave   formAction = "save"
	actionAdd    formAction = "add"
	actionRemove formAction = "remove"
	actionCancel formAction = "cancel"
)

// OrderFormModel creates a new order, or edits one when the draft carries an id.
type OrderFormModel struct {
	CommonModel
	ledger *order.Service

	// Pointers keep the huh bindings valid across model copies.
	draft  *order.Draft
	action *formAction

	form   *huh.Form
	saving bool
	status string
	err    error
}

func NewOrderFormModel(ledger *order.Service, draft order.Draft) OrderFormModel {
	if len(draft.Items) == 0 {
		draft.AddItem()
	}

	m := OrderFormModel{
		ledger: ledger,
		draft:  &draft,
		action: new(formAction),
	}
	m.form = m.buildForm()

	return m
}

func (m OrderFormModel) Title() string {
	if m.draft.Editing() {
		return "Edit Order"
	}

	return "New Order"
}

func (m OrderFormModel) ShortHelp() string {
	return "Tab/Enter: next field | Shift+Tab: previous | Esc: back"
}

func (m OrderFormModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m OrderFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		m.saving = false

		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		if msg.edited {
			return m, ShowOrders
		}

		m.err = nil
		m.status = fmt.Sprintf("Saved order for %s: %s", msg.order.CustomerName, FormatAmount(msg.order.Total))
		m.draft.Reset()
		m.form = m.buildForm()

		return m, m.form.Init()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, m.leave()
		}
	}

	if m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateAborted {
		return m, m.leave()
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch *m.action {
	case actionAdd:
		m.draft.AddItem()
	case actionRemove:
		if len(m.draft.Items) > 1 {
			m.draft.Items = m.draft.Items[:len(m.draft.Items)-1]
		}
	case actionCancel:
		leave := m.leave()
		m.draft.Reset()

		return m, leave
	default:
		m.saving = true
		m.status = "Saving..."

		return m, m.submitCmd()
	}

	m.form = m.buildForm()

	return m, m.form.Init()
}

func (m OrderFormModel) leave() tea.Cmd {
	if m.draft.Editing() {
		return ShowOrders
	}

	return Back
}

func (m OrderFormModel) buildForm() *huh.Form {
	scope := m.ledger.Policy().Scope
	d := m.draft

	header := []huh.Field{
		huh.NewInput().
			Key("customer_name").
			Title("Cliente").
			Value(&d.CustomerName).
			Validate(requiredText("customer name is required")),
	}

	if scope == order.ScopeOrder {
		header = append(header, paymentSelect("Pagamento", &d.PaymentMethod))
	}

	groups := []*huh.Group{huh.NewGroup(header...)}

	for i := range d.Items {
		item := &d.Items[i]

		fields := []huh.Field{
			huh.NewInput().
				Title(fmt.Sprintf("Produto %d", i+1)).
				Value(&item.Name).
				Validate(requiredText("product name is required")),
			huh.NewInput().
				Title("Valor").
				Placeholder("0,00").
				Value(&item.Price).
				Validate(validPrice),
			brandSelect(&item.Brand),
		}

		if scope == order.ScopeItem {
			fields = append(fields, paymentSelect("Pagamento", &item.PaymentMethod))
		}

		groups = append(groups, huh.NewGroup(fields...))
	}

	*m.action = actionSave

	actions := []huh.Option[formAction]{
		huh.NewOption("Save order", actionSave),
		huh.NewOption("Add product", actionAdd),
	}

	if len(d.Items) > 1 {
		actions = append(actions, huh.NewOption("Remove last product", actionRemove))
	}

	actions = append(actions, huh.NewOption("Cancel", actionCancel))

	groups = append(groups, huh.NewGroup(
		huh.NewSelect[formAction]().
			Title("Next").
			Options(actions...).
			Value(m.action),
	))

	return huh.NewForm(groups...).WithWidth(50).WithShowHelp(false)
}

// unselected is the blank first option, so an untouched select fails validation.
const unselected = "Selecione"

func paymentOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption(unselected, "")}
	for _, p := range order.PaymentMethods {
		opts = append(opts, huh.NewOption(p.Label(), string(p)))
	}

	return opts
}

func brandOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption(unselected, "")}
	for _, b := range order.Brands {
		opts = append(opts, huh.NewOption(b.Label(), string(b)))
	}

	return opts
}

func paymentSelect(title string, value *string) *huh.Select[string] {
	return huh.NewSelect[string]().
		Title(title).
		Options(paymentOptions()...).
		Value(value).
		Validate(requiredText("choose a payment method"))
}

func brandSelect(value *string) *huh.Select[string] {
	return huh.NewSelect[string]().
		Title("Marca").
		Options(brandOptions()...).
		Value(value).
		Validate(requiredText("select a brand"))
}

func requiredText(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}

		return nil
	}
}

func validPrice(s string) error {
	p, err := order.NumberReject.Parse(s)
	if err != nil || !p.IsPositive() {
		return errors.New("enter a valid price")
	}

	return nil
}

func (m OrderFormModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Render(m.Title())

	total := fmt.Sprintf("Total: %s (%d products)",
		activeStyle(FormatAmount(m.ledger.Quote(*m.draft))),
		len(m.draft.Items),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.form.View(),
		"",
		total,
	)

	if m.err != nil {
		content += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err))
	} else if m.status != "" {
		content += "\n\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

type submitResultMsg struct {
	order  *order.Order
	edited bool
	err    error
}

func (m OrderFormModel) submitCmd() tea.Cmd {
	draft := *m.draft
	draft.Items = append([]order.DraftItem(nil), m.draft.Items...)

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		o, err := m.ledger.Submit(ctx, draft)

		return submitResultMsg{order: o, edited: draft.Editing(), err: err}
	}
}
