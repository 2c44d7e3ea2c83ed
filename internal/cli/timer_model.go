package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/etude/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
)

type timerOutcome int

const (
	timerRunning timerOutcome = iota
	timerSaved
	timerAbandoned
)

type timerKeyMap struct {
	Toggle key.Binding
	Finish key.Binding
	Quit   key.Binding
}

func (k timerKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Toggle, k.Finish, k.Quit} }

func (k timerKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func defaultTimerKeys() timerKeyMap {
	return timerKeyMap{
		Toggle: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause/resume")),
		Finish: key.NewBinding(key.WithKeys("enter", "s"), key.WithHelp("enter", "finish and log")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "discard")),
	}
}

// timerModel times a practice session. Elapsed time is measured on the
// injected clock; the stopwatch only drives redraws.
type timerModel struct {
	label string
	now   func() time.Time
	sw    stopwatch.Model
	keys  timerKeyMap
	help  help.Model

	started time.Time
	banked  time.Duration
	paused  bool
	outcome timerOutcome
}

func newTimerModel(label string, now func() time.Time) timerModel {
	return timerModel{
		label:   label,
		now:     now,
		sw:      stopwatch.NewWithInterval(time.Second),
		keys:    defaultTimerKeys(),
		help:    help.New(),
		started: now(),
	}
}

// Elapsed is the running time excluding pauses.
func (m timerModel) Elapsed() time.Duration {
	if m.paused {
		return m.banked
	}
	return m.banked + m.now().Sub(m.started)
}

// Minutes is the elapsed time rounded to the nearest minute.
func (m timerModel) Minutes() int {
	return int(m.Elapsed().Round(time.Minute) / time.Minute)
}

func (m timerModel) Outcome() timerOutcome { return m.outcome }

func (m *timerModel) pause() {
	if !m.paused {
		m.banked += m.now().Sub(m.started)
		m.paused = true
	}
}

func (m timerModel) Init() tea.Cmd {
	return m.sw.Init()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.pause()
			m.outcome = timerAbandoned
			return m, tea.Quit
		case key.Matches(msg, m.keys.Finish):
			m.pause()
			m.outcome = timerSaved
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if m.paused {
				m.started = m.now()
				m.paused = false
			} else {
				m.pause()
			}
			return m, m.sw.Toggle()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.sw, cmd = m.sw.Update(msg)
	return m, cmd
}

func (m timerModel) View() string {
	var b strings.Builder
	if m.label != "" {
		b.WriteString(formatter.Bold(m.label))
		b.WriteString("\n\n")
	}
	clock := formatClock(m.Elapsed())
	if m.paused && m.outcome == timerRunning {
		b.WriteString(formatter.StyleYellow.Render(clock + "  paused"))
	} else {
		b.WriteString(formatter.StyleGreen.Render(clock))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return formatter.RenderBox("Practice Timer", b.String()) + "\n"
}

func formatClock(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	mnt := int(d%time.Hour) / int(time.Minute)
	s := int(d%time.Minute) / int(time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mnt, s)
	}
	return fmt.Sprintf("%02d:%02d", mnt, s)
}
