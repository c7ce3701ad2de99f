package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/points"
)

type rewardsState int

const (
	rewardsStateBrowse rewardsState = iota
	rewardsStateAdd
)

type RewardsModel struct {
	CommonModel
	svc *points.Service

	state   rewardsState
	table   table.Model
	rewards []points.Reward
	users   []points.User
	userIdx int

	form   *huh.Form
	status string

	formName        string
	formPoints      string
	formDescription string
}

func NewRewardsModel(svc *points.Service) RewardsModel {
	columns := []table.Column{
		{Title: "Reward", Width: 24},
		{Title: "Cost", Width: 8},
		{Title: "Progress", Width: 10},
		{Title: "Description", Width: 36},
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

	return RewardsModel{svc: svc, table: t}
}

func (m RewardsModel) Title() string { return "Redeem Rewards" }
func (m RewardsModel) ShortHelp() string {
	if m.state == rewardsStateAdd {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | Enter: redeem | Tab: switch user | a: add reward | r: refresh"
}

func (m RewardsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RewardsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rewardsLoadMsg:
		m.users = msg.users
		m.rewards = msg.rewards
		if m.userIdx >= len(m.users) {
			m.userIdx = 0
		}
		m.refreshTable()
		return m, nil

	case redeemMsg:
		switch {
		case msg.err != nil:
			m.status = fmt.Sprintf("Error: %v", msg.err)
		case msg.redeemed:
			m.status = fmt.Sprintf("Redeemed %q", msg.reward)
		default:
			m.status = fmt.Sprintf("Not enough points for %q", msg.reward)
		}
		return m, m.loadCmd()

	case rewardSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error adding reward: %v", msg.err)
		}
		m.state = rewardsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case rewardsStateBrowse:
		return m.updateBrowse(msg)
	case rewardsStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m RewardsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			return m, m.redeemCmd()
		case "a":
			return m.enterAddMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m RewardsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formPoints = ""
	m.formDescription = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Reward name").
				Value(&m.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("points").
				Title("Points required").
				Value(&m.formPoints).
				Validate(func(s string) error {
					v, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || v <= 0 {
						return fmt.Errorf("points must be a positive integer")
					}
					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description (optional)").
				Value(&m.formDescription),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = rewardsStateAdd
	m.table.Blur()
	return m, m.form.Init()
}

func (m RewardsModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = rewardsStateBrowse
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

	return m, m.saveRewardCmd()
}

func (m RewardsModel) View() string {
	user := "nobody"
	balance := 0

	if len(m.users) > 0 {
		user = m.users[m.userIdx].Name

		if b, err := m.svc.Balance(m.users[m.userIdx].ID); err == nil {
			balance = b
		}
	}

	header := fmt.Sprintf("Redeeming as: %s | Balance: %d",
		activeStyle(user), balance)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == rewardsStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Add Reward\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *RewardsModel) refreshTable() {
	balance := 0
	if len(m.users) > 0 {
		if b, err := m.svc.Balance(m.users[m.userIdx].ID); err == nil {
			balance = b
		}
	}

	rows := make([]table.Row, 0, len(m.rewards))

	for _, rw := range m.rewards {
		progress := points.AffordabilityProgress(balance, rw.PointsRequired)

		rows = append(rows, table.Row{
			rw.Name,
			strconv.Itoa(rw.PointsRequired),
			fmt.Sprintf("%.0f%%", progress*100),
			rw.Description,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type rewardsLoadMsg struct {
	users   []points.User
	rewards []points.Reward
}

func (m RewardsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return rewardsLoadMsg{users: m.svc.ListUsers(), rewards: m.svc.ListRewards()}
	}
}

type redeemMsg struct {
	reward   string
	redeemed bool
	err      error
}

func (m RewardsModel) redeemCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rewards) || len(m.users) == 0 {
		return nil
	}

	userID := m.users[m.userIdx].ID
	reward := m.rewards[idx]

	return func() tea.Msg {
		redeemed, err := m.svc.RedeemReward(userID, reward.ID)
		if err != nil {
			return redeemMsg{reward: reward.Name, err: err}
		}

		if !redeemed {
			return redeemMsg{reward: reward.Name, redeemed: false}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		return redeemMsg{reward: reward.Name, redeemed: true, err: m.svc.Checkpoint(ctx)}
	}
}

type rewardSavedMsg struct {
	err error
}

func (m RewardsModel) saveRewardCmd() tea.Cmd {
	name := m.formName
	pts := m.formPoints
	desc := m.formDescription

	return func() tea.Msg {
		v, err := strconv.Atoi(strings.TrimSpace(pts))
		if err != nil {
			return rewardSavedMsg{err: err}
		}

		if _, err := m.svc.AddReward(name, v, desc); err != nil {
			return rewardSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		return rewardSavedMsg{err: m.svc.Checkpoint(ctx)}
	}
}
