package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/cadence"
	"github.com/benjamonnguyen/cadence/clock"
	"github.com/benjamonnguyen/cadence/schedule"
	"github.com/benjamonnguyen/cadence/timer"
)

// Colors
var blockColors = map[cadence.BlockType]lipgloss.Color{
	cadence.FocusBlock:      "#38bdf8",
	cadence.BreakBlock:      "#22c55e",
	cadence.MeditationBlock: "#a855f7",
	cadence.WorkoutBlock:    "#f59e0b",
	cadence.RestBlock:       "#14b8a6",
	cadence.CustomBlock:     "#60a5fa",
}

func colorForType(t cadence.BlockType) lipgloss.Color {
	if c, ok := blockColors[t]; ok {
		return c
	}
	return blockColors[cadence.FocusBlock]
}

type palette struct {
	text  lipgloss.Color
	muted lipgloss.Color
}

var themes = map[cadence.Theme]palette{
	cadence.DarkTheme:  {text: "252", muted: "241"},
	cadence.LightTheme: {text: "235", muted: "245"},
}

// Key bindings
type keyMap struct {
	Toggle key.Binding
	Skip   key.Binding
	Extend key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Skip, k.Extend, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space", "enter"),
		key.WithHelp("space", "start/pause"),
	),
	Skip: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "skip"),
	),
	Extend: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "+1 min"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Messages

// runMsg carries a clock callback onto the program goroutine.
type runMsg func()

// controls is what the view drives: a schedule engine, or a bare countdown when no
// template was chosen.
type controls interface {
	Status() cadence.Status
	Start()
	Pause()
	Reset()
	Skip()
	Extend(minutes int)
}

type bareTimer struct {
	*timer.Timer
}

func (bareTimer) Skip() {}

func (bareTimer) Extend(int) {}

// Model
type tuiModel struct {
	settings cadence.Settings
	title    string
	ctl      controls
	next     func() (cadence.SessionBlock, bool)

	block     cadence.SessionBlock
	index     int
	blocks    int
	remaining time.Duration
	done      bool

	progress progress.Model
	help     help.Model
	palette  palette
	quitting bool

	// ring sounds the block-end alert when SoundEnabled is set
	ring func()
}

func newTUIModel(settings cadence.Settings, title string) *tuiModel {
	p, ok := themes[settings.Theme]
	if !ok {
		p = themes[cadence.DarkTheme]
	}
	return &tuiModel{
		settings: settings,
		title:    title,
		progress: progress.New(
			progress.WithSolidFill(string(colorForType(cadence.FocusBlock))),
			progress.WithoutPercentage(),
			progress.WithWidth(40),
		),
		help:    help.New(),
		palette: p,
		ring: func() {
			fmt.Fprint(os.Stdout, "\a")
		},
	}
}

func (m *tuiModel) alert() {
	if m.settings.SoundEnabled {
		m.ring()
	}
}

// useEngine drives the view from a schedule engine built with the given clock.
func (m *tuiModel) useEngine(tpl cadence.SessionTemplate, clk clock.Clock, interval time.Duration) error {
	e, err := schedule.New(tpl, schedule.Events{
		OnBlockStart: func(i int, b cadence.SessionBlock) {
			m.index, m.block, m.remaining, m.done = i, b, b.Duration(), false
		},
		OnTick: func(d time.Duration) {
			m.remaining = d
		},
		OnBlockEnd: func(int, cadence.SessionBlock) {
			m.alert()
		},
		OnComplete: func() {
			m.done = true
			m.index, m.block = 0, tpl.Blocks[0]
			m.remaining = m.block.Duration()
		},
	},
		schedule.WithClock(clk),
		schedule.WithInterval(interval),
		schedule.WithLogger(log.Default()),
	)
	if err != nil {
		return err
	}
	m.ctl = e
	m.next = e.NextBlock
	m.blocks = len(tpl.Blocks)
	m.block = e.CurrentBlock()
	m.remaining = e.Remaining()
	return nil
}

// useTimer drives the view from a single countdown of SessionMinutes.
func (m *tuiModel) useTimer(clk clock.Clock, interval time.Duration) {
	b := cadence.SessionBlock{
		Label:           "Focus",
		DurationMinutes: float64(cadence.ClampMinutes(m.settings.SessionMinutes)),
		Type:            cadence.FocusBlock,
	}
	t := timer.New(b.Duration(), clk,
		timer.WithInterval(interval),
		timer.OnTick(func(d time.Duration) {
			m.remaining = d
		}),
		timer.OnFinish(func() {
			m.done = true
			m.remaining = b.Duration()
			m.alert()
		}),
	)
	m.ctl = bareTimer{t}
	m.next = func() (cadence.SessionBlock, bool) { return cadence.SessionBlock{}, false }
	m.blocks = 1
	m.block = b
	m.remaining = t.Remaining()
}

func (m *tuiModel) Init() tea.Cmd {
	if m.settings.AutoStart {
		return func() tea.Msg {
			return runMsg(m.ctl.Start)
		}
	}
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runMsg:
		msg()
		return m, nil

	case tea.WindowSizeMsg:
		m.progress.Width = min(60, max(10, msg.Width-4))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Toggle):
			if m.ctl.Status() == cadence.StatusRunning {
				m.ctl.Pause()
			} else {
				m.done = false
				m.ctl.Start()
			}
		case key.Matches(msg, keys.Skip):
			m.ctl.Skip()
		case key.Matches(msg, keys.Extend):
			m.ctl.Extend(1)
		case key.Matches(msg, keys.Reset):
			m.done = false
			m.ctl.Reset()
		}
	}
	return m, nil
}

func (m *tuiModel) View() string {
	if m.quitting {
		return ""
	}

	accent := colorForType(m.block.Type)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	textStyle := lipgloss.NewStyle().Foreground(m.palette.text)
	mutedStyle := lipgloss.NewStyle().Foreground(m.palette.muted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	label := fmt.Sprintf("%s  %d/%d", m.block.Label, m.index+1, m.blocks)
	b.WriteString(textStyle.Render(label))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(m.ctl.Status().String()))
	b.WriteString("\n\n")

	clockText := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(cadence.FormatClock(m.remaining))
	if m.settings.TimerMode == cadence.BarMode {
		m.progress.FullColor = string(accent)
		b.WriteString(m.progress.ViewAs(elapsedFraction(m.block.Duration(), m.remaining)))
		b.WriteString("  ")
	}
	b.WriteString(clockText)
	b.WriteString("\n\n")

	b.WriteString(mutedStyle.Render(nextLine(m.next, m.done)))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(keys))
	b.WriteString("\n")
	return b.String()
}

func elapsedFraction(total, remaining time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return min(1, max(0, 1-float64(remaining)/float64(total)))
}

func nextLine(next func() (cadence.SessionBlock, bool), done bool) string {
	if done {
		return "Complete! Press space to go again."
	}
	b, ok := next()
	if !ok {
		return "Next: done"
	}
	return fmt.Sprintf("Next: %s (%s)", b.Label, cadence.FormatClock(b.Duration()))
}

func tuiCommand(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	templateID := fs.String("template", "", "saved template ID; bare timer when empty")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	settings, err := a.settings.LoadSettings(ctx, cadence.DefaultSettings())
	if err != nil {
		return err
	}

	var tpl cadence.SessionTemplate
	title := fmt.Sprintf("%d minute session", cadence.ClampMinutes(settings.SessionMinutes))
	if *templateID != "" {
		rec, err := a.templates.GetTemplate(ctx, cadence.TemplateID(*templateID))
		if err != nil {
			return fmt.Errorf("template %q: %w", *templateID, err)
		}
		tpl = rec.Template
		title = tpl.Name
	}

	m := newTUIModel(settings, title)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	clk := clock.Dispatching(clock.System, func(f func()) {
		p.Send(runMsg(f))
	})
	if *templateID != "" {
		if err := m.useEngine(tpl, clk, a.cfg.TickInterval); err != nil {
			return err
		}
	} else {
		m.useTimer(clk, a.cfg.TickInterval)
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
