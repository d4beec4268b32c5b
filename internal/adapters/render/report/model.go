package report

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avellar-dev/posture-coach/internal/application"
	"github.com/avellar-dev/posture-coach/internal/domain"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	render func(styles) string
	styles styles
	output string
}

func newModel(render func(styles) string) model {
	return model{
		render: render,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.render(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// RenderSummary renders an end-of-session summary for terminal output.
func RenderSummary(summary domain.SessionSummary, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderSummaryView(summary, opts, s)
	})
}

// RenderSessions renders a registry snapshot for terminal output.
func RenderSessions(snapshot application.RegistrySnapshot, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderSessionsView(snapshot, opts, s)
	})
}

func run(render func(styles) string) (string, error) {
	p := tea.NewProgram(
		newModel(render),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	result, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return result.output, nil
}
