package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/points"
	snapshotStore "github.com/MrJamesThe3rd/tally/internal/points/store"
)

type model struct {
	svc *points.Service

	currentView View

	tasksView   view.TasksModel
	rewardsView view.RewardsModel
	historyView view.HistoryModel
}

type View int

const (
	ViewMenu    View = 0
	ViewTasks   View = 1
	ViewRewards View = 2
	ViewHistory View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	mode, err := points.ParseMode(cfg.Ledger.Mode)
	if err != nil {
		slog.Error("failed to parse ledger mode", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	store := snapshotStore.New(db)
	if err := store.Init(ctx); err != nil {
		slog.Error("failed to init snapshot store", "error", err)
		os.Exit(1)
	}

	svc := points.NewService(mode, store)

	snap, err := store.Load(ctx)
	switch {
	case errors.Is(err, points.ErrNoSnapshot):
		snap = points.DefaultSnapshot(mode)
	case err != nil:
		slog.Error("failed to load snapshot", "error", err)
		os.Exit(1)
	}

	if err := svc.Restore(snap); err != nil {
		slog.Error("failed to restore snapshot", "error", err)
		os.Exit(1)
	}

	return model{
		svc:         svc,
		currentView: ViewMenu,
		tasksView:   view.NewTasksModel(svc),
		rewardsView: view.NewRewardsModel(svc),
		historyView: view.NewHistoryModel(svc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewTasks
				m.tasksView = view.NewTasksModel(m.svc)

				return m, m.tasksView.Init()
			case "2":
				m.currentView = ViewRewards
				m.rewardsView = view.NewRewardsModel(m.svc)

				return m, m.rewardsView.Init()
			case "3":
				m.currentView = ViewHistory
				m.historyView = view.NewHistoryModel(m.svc)

				return m, m.historyView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewTasks:
		var newModel tea.Model
		newModel, cmd = m.tasksView.Update(msg)
		m.tasksView = newModel.(view.TasksModel)
	case ViewRewards:
		var newModel tea.Model
		newModel, cmd = m.rewardsView.Update(msg)
		m.rewardsView = newModel.(view.RewardsModel)
	case ViewHistory:
		var newModel tea.Model
		newModel, cmd = m.historyView.Update(msg)
		m.historyView = newModel.(view.HistoryModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Tally TUI\n\n" +
				"1. Complete Tasks\n" +
				"2. Redeem Rewards\n" +
				"3. Activity History\n\n" +
				"q. Quit",
		)
	case ViewTasks:
		return m.tasksView.View()
	case ViewRewards:
		return m.rewardsView.View()
	case ViewHistory:
		return m.historyView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
