package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pedidos/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/pedidos/internal/config"
	"github.com/MrJamesThe3rd/pedidos/internal/export"
	"github.com/MrJamesThe3rd/pedidos/internal/importer"
	"github.com/MrJamesThe3rd/pedidos/internal/order"
	"github.com/MrJamesThe3rd/pedidos/internal/order/store"
)

type model struct {
	cfg           *config.Config
	ledger        *order.Service
	importService *importer.Service
	exportService *export.Service

	currentView View
	width       int
	height      int

	formView   view.OrderFormModel
	ordersView view.OrdersModel
	importView view.ImportModel
	exportView view.ExportModel
}

type View int

const (
	ViewMenu   View = 0
	ViewForm   View = 1
	ViewOrders View = 2
	ViewImport View = 3
	ViewExport View = 4
)

func newModel(cfg *config.Config, ledger *order.Service) model {
	impSvc := importer.NewService()
	expSvc := export.NewService()

	return model{
		cfg:           cfg,
		ledger:        ledger,
		importService: impSvc,
		exportService: expSvc,
		currentView:   ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// open switches to v with a fresh screen and replays the last window size.
func (m model) open(v View, screen view.View) (tea.Model, tea.Cmd) {
	m.currentView = v
	m = m.setScreen(screen)

	cmds := []tea.Cmd{screen.Init()}
	if m.width > 0 {
		size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
		cmds = append(cmds, func() tea.Msg { return size })
	}

	return m, tea.Batch(cmds...)
}

func (m model) setScreen(screen tea.Model) model {
	switch s := screen.(type) {
	case view.OrderFormModel:
		m.formView = s
	case view.OrdersModel:
		m.ordersView = s
	case view.ImportModel:
		m.importView = s
	case view.ExportModel:
		m.exportView = s
	}

	return m
}

func (m model) screen() view.View {
	switch m.currentView {
	case ViewForm:
		return m.formView
	case ViewOrders:
		return m.ordersView
	case ViewImport:
		return m.importView
	case ViewExport:
		return m.exportView
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.open(ViewForm, view.NewOrderFormModel(m.ledger, order.NewDraft()))
			case "2":
				return m.open(ViewOrders, view.NewOrdersModel(m.ledger))
			case "3":
				return m.open(ViewImport, view.NewImportModel(m.ledger, m.importService))
			case "4":
				return m.open(ViewExport, view.NewExportModel(m.ledger, m.exportService, m.cfg.App.ExportDir))
			}
		}

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil

	case view.EditOrderMsg:
		return m.open(ViewForm, view.NewOrderFormModel(m.ledger, order.DraftFromOrder(msg.Order)))

	case view.ShowOrdersMsg:
		return m.open(ViewOrders, view.NewOrdersModel(m.ledger))
	}

	screen := m.screen()
	if screen == nil {
		return m, nil
	}

	next, cmd := screen.Update(msg)
	m = m.setScreen(next)

	return m, cmd
}

func (m model) View() string {
	screen := m.screen()
	if screen == nil {
		return m.menu()
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render(screen.Title())
	help := lipgloss.NewStyle().Faint(true).Render(screen.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingLeft(1).Render(title),
		screen.View(),
		lipgloss.NewStyle().PaddingLeft(1).Render(help),
	)
}

func (m model) menu() string {
	orders := m.ledger.List(order.Filter{})

	open := 0
	for _, o := range orders {
		if !o.Settled {
			open++
		}
	}

	return lipgloss.NewStyle().Padding(2).Render(
		fmt.Sprintf("%s\n\n", m.cfg.App.Name) +
			fmt.Sprintf("%d orders, %d awaiting payment\n\n", len(orders), open) +
			"1. New Order\n" +
			"2. Orders\n" +
			"3. Import Spreadsheet\n" +
			"4. Export Orders\n\n" +
			"q. Quit",
	)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.App.Debug {
		f, err := tea.LogToFile("debug.log", "pedidos")
		if err != nil {
			slog.Error("failed to open debug log", "error", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	ctx := context.Background()

	repo, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	policy, _ := cfg.Policy()

	ledger := order.NewService(repo, order.NewCalculator(cfg.Rates()), policy)
	if err := ledger.Load(ctx); err != nil {
		slog.Error("failed to load ledger", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(cfg, ledger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
