package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/pulse/pkg/domain/analytics"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("PULSE_SKIP_DASHBOARD_RUN") == "true" {
			return nil
		}
		p := tea.NewProgram(initialModel())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dashboardCmd)
}

// Styles
var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#3B7A9E")).
	PaddingLeft(1).
	PaddingRight(1)

var healthyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
var atRiskStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
var criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

type model struct {
	table  table.Model
	health *analytics.HealthReport
	risk   *analytics.RiskRadar
	delays []analytics.DelayPrediction
	err    error
}

func initialModel() model {
	services, err := loadServicesForCurrentDir()
	if err != nil {
		return model{err: err}
	}

	health, err := services.Insights.Health()
	if err != nil {
		return model{err: err}
	}

	risk, err := services.Insights.Risk()
	if err != nil {
		return model{err: err}
	}

	delays, err := services.Insights.Delays()
	if err != nil {
		return model{err: err}
	}

	columns := []table.Column{
		{Title: "Task", Width: 40},
		{Title: "Probability", Width: 11},
		{Title: "Delay", Width: 6},
		{Title: "Reasons", Width: 50},
	}

	rows := []table.Row{}
	for _, p := range delays {
		reasons := ""
		if len(p.Reasons) > 0 {
			reasons = p.Reasons[0]
			if len(p.Reasons) > 1 {
				reasons = fmt.Sprintf("%s (+%d more)", reasons, len(p.Reasons)-1)
			}
		}
		rows = append(rows, table.Row{
			p.TaskTitle,
			fmt.Sprintf("%d%%", p.Probability),
			fmt.Sprintf("+%dd", p.PredictedDelayDays),
			reasons,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))

	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))

	t.SetStyles(s)

	return model{
		table:  t,
		health: health,
		risk:   risk,
		delays: delays,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error loading dashboard: %v\nPress q to quit.", m.err)
	}

	header := headerStyle.Render(fmt.Sprintf("Pulse  Health %d/100", m.health.Overall))

	statusLine := healthStyleFor(m.health.Status).Render(formatHealthStatus(m.health.Status)) +
		"  " + m.health.Summary

	riskLine := "Risk:"
	for _, d := range m.risk.Dimensions {
		part := fmt.Sprintf(" %s %d", d.Name, d.Score)
		if d.Score >= d.Threshold {
			part = criticalStyle.Render(part)
		}
		riskLine += part
	}

	delaysTitle := fmt.Sprintf("\nLikely delays (%d):", len(m.delays))
	if len(m.delays) == 0 {
		delaysTitle = healthyStyle.Render("\nNo delays predicted.")
	}

	return baseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			statusLine,
			riskLine,
			delaysTitle,
			m.table.View(),
			"\n[q] Quit  [Up/Down] Navigate",
		),
	) + "\n"
}

func healthStyleFor(s analytics.HealthStatus) lipgloss.Style {
	switch s {
	case analytics.HealthHealthy:
		return healthyStyle
	case analytics.HealthAtRisk:
		return atRiskStyle
	default:
		return criticalStyle
	}
}
