package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/points"
)

type HistoryModel struct {
	CommonModel
	svc *points.Service

	table   table.Model
	entries []points.HistoryEntry
}

func NewHistoryModel(svc *points.Service) HistoryModel {
	columns := []table.Column{
		{Title: "When", Width: 10},
		{Title: "Who", Width: 12},
		{Title: "What", Width: 40},
		{Title: "Points", Width: 8},
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

	return HistoryModel{svc: svc, table: t}
}

func (m HistoryModel) Title() string     { return "Activity History" }
func (m HistoryModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m HistoryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadMsg:
		m.entries = msg.entries
		m.refreshTable()
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m HistoryModel) View() string {
	if len(m.entries) == 0 {
		return lipgloss.NewStyle().Padding(2).Render(
			"No history yet.\n\nComplete tasks or redeem rewards to see activity here.")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(tableView)
}

func (m *HistoryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.entries))

	for _, e := range m.entries {
		what := fmt.Sprintf("completed %s (%s)", e.TaskName, e.CategoryName)
		if e.Kind == points.KindRewardRedemption {
			what = "redeemed " + e.RewardName
		}

		rows = append(rows, table.Row{
			FormatAge(e.CreatedAt),
			e.UserName,
			what,
			FormatPoints(e.Points),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type historyLoadMsg struct {
	entries []points.HistoryEntry
}

func (m HistoryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return historyLoadMsg{entries: m.svc.History()}
	}
}
