package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeamusWaldron/cubebot"
)

// Messages
type tickMsg time.Time
type stepMsg struct{ step cubebot.Step }
type doneMsg struct{ err error }

// runModel shows a move sequence executing on the robot.
type runModel struct {
	ctx    context.Context
	cancel context.CancelFunc
	robot  *cubebot.Robot
	moves  []cubebot.Move
	stepCh <-chan cubebot.Step
	home   bool

	started  time.Time
	finished time.Time
	steps    []cubebot.Step
	done     bool
	quitting bool
	err      error
}

func newRunModel(ctx context.Context, robot *cubebot.Robot, moves []cubebot.Move, steps <-chan cubebot.Step, home bool) *runModel {
	ctx, cancel := context.WithCancel(ctx)
	return &runModel{
		ctx:    ctx,
		cancel: cancel,
		robot:  robot,
		moves:  moves,
		stepCh: steps,
		home:   home,
	}
}

func (m *runModel) Init() tea.Cmd {
	m.started = time.Now()
	return tea.Batch(m.execute(), m.waitForStep(), m.tickCmd())
}

func (m *runModel) execute() tea.Cmd {
	return func() tea.Msg {
		if m.home {
			if err := m.robot.Home(m.ctx); err != nil {
				return doneMsg{err: err}
			}
		}
		return doneMsg{err: m.robot.Apply(m.ctx, m.moves...)}
	}
}

func (m *runModel) waitForStep() tea.Cmd {
	return func() tea.Msg {
		select {
		case st := <-m.stepCh:
			return stepMsg{step: st}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *runModel) tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if m.done {
				return m, tea.Quit
			}
			// Stop after the current action; quit once the robot reports back.
			m.quitting = true
			m.cancel()
		}

	case stepMsg:
		m.steps = append(m.steps, msg.step)
		return m, m.waitForStep()

	case doneMsg:
		m.done = true
		m.finished = time.Now()
		m.err = msg.err
		// Drain steps that raced the final message.
		for len(m.stepCh) > 0 {
			m.steps = append(m.steps, <-m.stepCh)
		}
		m.cancel()
		if m.quitting {
			return m, tea.Quit
		}

	case tickMsg:
		if !m.done {
			return m, m.tickCmd()
		}
	}
	return m, nil
}

func (m *runModel) elapsed() time.Duration {
	if m.done {
		return m.finished.Sub(m.started)
	}
	return time.Since(m.started)
}

func (m *runModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("cubebot"))
	b.WriteString("\n\n")

	status := fmt.Sprintf("Move %d/%d  %s", len(m.steps), len(m.moves), m.elapsed().Round(100*time.Millisecond))
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n\n")

	if n := len(m.steps); n > 0 {
		last := m.steps[n-1]
		b.WriteString(fmt.Sprintf("Last: %s from %s  %s\n",
			moveStyle.Render(last.Plan.Move.Notation()),
			slotStyle.Render(last.Plan.Slot.String()),
			statusStyle.Render(cubebot.FormatActions(last.Plan.Actions()))))
		b.WriteString(fmt.Sprintf("Orientation: %s\n", last.Plan.After))
	}

	var done, pending []string
	for i, mv := range m.moves {
		if i < len(m.steps) {
			done = append(done, mv.Notation())
		} else {
			pending = append(pending, mv.Notation())
		}
	}
	b.WriteString("\n")
	b.WriteString(moveStyle.Render(strings.Join(done, " ")))
	if len(done) > 0 && len(pending) > 0 {
		b.WriteString(" ")
	}
	b.WriteString(statusStyle.Render(strings.Join(pending, " ")))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	case m.done:
		b.WriteString(moveStyle.Render("Done"))
		b.WriteString("\n\n")
	case m.quitting:
		b.WriteString(errorStyle.Render("Stopping..."))
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("q: quit"))
	return b.String()
}
