package statusconsole

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	domainsync "deskbridge/internal/domain/sync"
	"deskbridge/internal/usecase/synccycle"
)

type Options struct {
	RefreshInterval time.Duration
}

type statusModel struct {
	ctx             context.Context
	service         *synccycle.Service
	refreshInterval time.Duration

	statuses      []domainsync.ConnectorStatus
	selectedIndex int
	status        string
}

type statusesLoadedMsg struct {
	statuses []domainsync.ConnectorStatus
	err      error
}

type tickMsg struct{}

func NewStatusModel(ctx context.Context, service *synccycle.Service, options Options) tea.Model {
	interval := options.RefreshInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &statusModel{
		ctx:             ctx,
		service:         service,
		refreshInterval: interval,
		status:          "loading",
	}
}

func (m *statusModel) Init() tea.Cmd {
	return tea.Batch(m.loadStatusesCmd(), m.tickCmd())
}

func (m *statusModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tickMsg:
		return m, tea.Batch(m.loadStatusesCmd(), m.tickCmd())
	case statusesLoadedMsg:
		if msg.err != nil {
			m.status = "refresh failed: " + msg.err.Error()
			return m, nil
		}
		m.statuses = msg.statuses
		if m.selectedIndex >= len(m.statuses) {
			m.selectedIndex = len(m.statuses) - 1
		}
		if m.selectedIndex < 0 {
			m.selectedIndex = 0
		}
		m.status = fmt.Sprintf("refreshed, %d connectors", len(m.statuses))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.status = "refreshing"
			return m, m.loadStatusesCmd()
		case "up", "k":
			if m.selectedIndex > 0 {
				m.selectedIndex--
			}
			return m, nil
		case "down", "j":
			if m.selectedIndex < len(m.statuses)-1 {
				m.selectedIndex++
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *statusModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("62"))

	var builder strings.Builder
	builder.WriteString(titleStyle.Render("Sync Status Console"))
	builder.WriteString("\n")
	builder.WriteString(dimStyle.Render(fmt.Sprintf("refresh=%s", m.refreshInterval)))
	builder.WriteString("\n\n")

	builder.WriteString(sectionStyle.Render("Connectors"))
	builder.WriteString("\n")
	if len(m.statuses) == 0 {
		builder.WriteString(dimStyle.Render("- no connectors"))
		builder.WriteString("\n")
	} else {
		for index, entry := range m.statuses {
			line := fmt.Sprintf(
				"%-10s last-synced=%s cursor=%s tickets=%d",
				entry.Connector,
				formatSyncTime(entry.LastSyncedAt),
				summarizeCursor(entry.CursorState),
				entry.TicketCount,
			)
			if index == m.selectedIndex {
				builder.WriteString(selectedStyle.Render("> " + line))
			} else {
				builder.WriteString("  " + line)
			}
			builder.WriteString("\n")
		}
	}
	builder.WriteString("\n")

	builder.WriteString(sectionStyle.Render("Status"))
	builder.WriteString("\n")
	builder.WriteString("- " + m.status)
	builder.WriteString("\n\n")

	builder.WriteString(dimStyle.Render("Keys: ↑/k ↓/j move  r refresh  q quit"))
	return builder.String()
}

func (m *statusModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *statusModel) loadStatusesCmd() tea.Cmd {
	return func() tea.Msg {
		statuses, err := m.service.Status(m.ctx, "")
		if err != nil {
			return statusesLoadedMsg{err: err}
		}
		return statusesLoadedMsg{statuses: statuses}
	}
}

func formatSyncTime(at time.Time) string {
	if at.IsZero() {
		return "never"
	}
	return at.UTC().Format(time.RFC3339)
}

func summarizeCursor(state domainsync.CursorState) string {
	if len(state) == 0 {
		return "-"
	}
	return fmt.Sprintf("%d keys", len(state))
}
