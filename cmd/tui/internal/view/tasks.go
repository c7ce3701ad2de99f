package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/points"
)

type tasksState int

const (
	tasksStateBrowse tasksState = iota
	tasksStateAdd
)

// taskRow pairs a task with its category for the flattened table.
type taskRow struct {
	category points.Category
	task     points.Task
}

type TasksModel struct {
	CommonModel
	svc *points.Service

	state tasksState
	table table.Model
	rows  []taskRow
	users []points.User

	// Index into users of whoever is completing tasks right now.
	userIdx int

	form   *huh.Form
	status string

	formCategoryID string
	formName       string
	formPoints     string
}

func NewTasksModel(svc *points.Service) TasksModel {
	columns := []table.Column{
		{Title: "Category", Width: 20},
		{Title: "Task", Width: 30},
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

	return TasksModel{svc: svc, table: t}
}

func (m TasksModel) Title() string { return "Complete Tasks" }
func (m TasksModel) ShortHelp() string {
	if m.state == tasksStateAdd {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | Enter: complete | Tab: switch user | a: add task | r: refresh"
}

func (m TasksModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TasksModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadMsg:
		m.users = msg.users
		m.rows = msg.rows
		if m.userIdx >= len(m.users) {
			m.userIdx = 0
		}
		m.refreshTable()
		return m, nil

	case earnMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("%s completed %q for %s points",
			msg.entry.UserName, msg.entry.TaskName, FormatPoints(msg.entry.Points))
		return m, m.loadCmd()

	case taskSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error adding task: %v", msg.err)
		}
		m.state = tasksStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case tasksStateBrowse:
		return m.updateBrowse(msg)
	case tasksStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m TasksModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "tab":
			if len(m.users) > 0 {
				m.userIdx = (m.userIdx + 1) % len(m.users)
				m.refreshTable()
			}
			return m, nil
		case "enter":
			return m, m.earnCmd()
		case "a":
			return m.enterAddMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m TasksModel) enterAddMode() (tea.Model, tea.Cmd) {
	cats := m.svc.ListCategories()
	if len(cats) == 0 {
		m.status = "Add a category first"
		return m, nil
	}

	options := make([]huh.Option[string], len(cats))
	for i, c := range cats {
		options[i] = huh.NewOption(c.Name, c.ID.String())
	}

	m.formCategoryID = cats[0].ID.String()
	m.formName = ""
	m.formPoints = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(options...).
				Value(&m.formCategoryID),

			huh.NewInput().
				Key("name").
				Title("Task name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("points").
				Title("Points (same for everyone)").
				Value(&m.formPoints).
				Validate(func(s string) error {
					v, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || v <= 0 {
						return fmt.Errorf("points must be a positive integer")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = tasksStateAdd
	m.table.Blur()
	return m, m.form.Init()
}

func (m TasksModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = tasksStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveTaskCmd()
}

func (m TasksModel) View() string {
	user := "nobody"
	if len(m.users) > 0 {
		user = m.users[m.userIdx].Name
	}

	header := fmt.Sprintf("Acting user: %s | Total points: %d",
		activeStyle(user), m.svc.TotalPoints())

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == tasksStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Add Task\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *TasksModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))

	for _, row := range m.rows {
		pts := ""
		if len(m.users) > 0 {
			pts = strconv.Itoa(row.task.Points.Resolve(m.users[m.userIdx].ID))
		}

		rows = append(rows, table.Row{row.category.Name, row.task.Name, pts})
	}

	m.table.SetRows(rows)
}

// Messages

type tasksLoadMsg struct {
	users []points.User
	rows  []taskRow
}

func (m TasksModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		var rows []taskRow

		for _, c := range m.svc.ListCategories() {
			for _, t := range c.Tasks {
				rows = append(rows, taskRow{category: c, task: t})
			}
		}

		return tasksLoadMsg{users: m.svc.ListUsers(), rows: rows}
	}
}

type earnMsg struct {
	entry *points.HistoryEntry
	err   error
}

func (m TasksModel) earnCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) || len(m.users) == 0 {
		return nil
	}

	userID := m.users[m.userIdx].ID
	taskID := m.rows[idx].task.ID

	return func() tea.Msg {
		entry, err := m.svc.EarnPoints(userID, taskID)
		if err != nil {
			return earnMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Checkpoint(ctx); err != nil {
			return earnMsg{entry: entry, err: err}
		}

		return earnMsg{entry: entry}
	}
}

type taskSavedMsg struct {
	err error
}

func (m TasksModel) saveTaskCmd() tea.Cmd {
	categoryID := m.formCategoryID
	name := m.formName
	pts := m.formPoints

	return func() tea.Msg {
		catID, err := uuid.Parse(categoryID)
		if err != nil {
			return taskSavedMsg{err: err}
		}

		v, err := strconv.Atoi(strings.TrimSpace(pts))
		if err != nil {
			return taskSavedMsg{err: err}
		}

		if _, err := m.svc.AddTask(catID, name, points.PointSpec{Flat: v}); err != nil {
			return taskSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		return taskSavedMsg{err: m.svc.Checkpoint(ctx)}
	}
}
