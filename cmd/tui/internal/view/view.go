package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// EditOrderMsg asks the shell to open the order form pre-filled with Order.
type EditOrderMsg struct {
	Order *order.Order
}

// ShowOrdersMsg asks the shell to switch to the orders table.
type ShowOrdersMsg struct{}

func ShowOrders() tea.Msg {
	return ShowOrdersMsg{}
}
