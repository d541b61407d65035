package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/cadence"
	"github.com/benjamonnguyen/cadence/clock"
)

var (
	enterKey  = tea.KeyMsg{Type: tea.KeyEnter}
	skipKey   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")}
	extendKey = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")}
	resetKey  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}
	quitKey   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
)

func TestTUIModel_Engine(t *testing.T) {
	t.Parallel()

	tpl := cadence.SessionTemplate{
		Name: "Sprint",
		Blocks: []cadence.SessionBlock{
			{Label: "Focus", DurationMinutes: 1, Type: cadence.FocusBlock},
			{Label: "Break", DurationMinutes: 0.5, Type: cadence.BreakBlock},
		},
	}
	fake := clock.NewFake(time.Unix(0, 0))
	m := newTUIModel(cadence.DefaultSettings(), tpl.Name)
	require.NoError(t, m.useEngine(tpl, fake, time.Second))

	assert.Contains(t, m.View(), "01:00")
	assert.Contains(t, m.View(), "Next: Break (00:30)")

	m.Update(enterKey)
	assert.Equal(t, cadence.StatusRunning, m.ctl.Status())
	fake.Advance(30 * time.Second)
	assert.Equal(t, 30*time.Second, m.remaining)
	assert.Contains(t, m.View(), "00:30")

	m.Update(extendKey)
	assert.Equal(t, 90*time.Second, m.remaining)

	m.Update(skipKey)
	assert.Equal(t, 1, m.index)
	assert.Equal(t, "Break", m.block.Label)
	assert.Contains(t, m.View(), "Next: done")

	fake.Advance(30 * time.Second)
	assert.True(t, m.done)
	assert.Equal(t, cadence.StatusIdle, m.ctl.Status())
	assert.Equal(t, 0, m.index)
	assert.Contains(t, m.View(), "Complete!")

	m.Update(enterKey)
	assert.False(t, m.done)
	assert.Equal(t, "Focus", m.block.Label)

	_, cmd := m.Update(quitKey)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestTUIModel_BareTimer(t *testing.T) {
	t.Parallel()

	settings := cadence.DefaultSettings()
	settings.SessionMinutes = 1
	settings.TimerMode = cadence.BarMode
	fake := clock.NewFake(time.Unix(0, 0))
	m := newTUIModel(settings, "1 minute session")
	m.useTimer(fake, time.Second)
	assert.Equal(t, time.Minute, m.remaining)

	m.Update(enterKey)
	fake.Advance(20 * time.Second)
	assert.Equal(t, 40*time.Second, m.remaining)
	assert.Contains(t, m.View(), "00:40")

	// skip and extend do nothing without a schedule
	m.Update(skipKey)
	m.Update(extendKey)
	assert.Equal(t, 40*time.Second, m.remaining)

	m.Update(enterKey)
	assert.Equal(t, cadence.StatusPaused, m.ctl.Status())

	m.Update(resetKey)
	assert.Equal(t, time.Minute, m.remaining)
	assert.Equal(t, cadence.StatusIdle, m.ctl.Status())

	m.Update(enterKey)
	fake.Advance(time.Minute)
	assert.True(t, m.done)
	assert.Equal(t, cadence.StatusIdle, m.ctl.Status())
}

func TestTUIModel_AutoStart(t *testing.T) {
	t.Parallel()

	settings := cadence.DefaultSettings()
	m := newTUIModel(settings, "")
	m.useTimer(clock.NewFake(time.Unix(0, 0)), time.Second)
	assert.Nil(t, m.Init())

	settings.AutoStart = true
	m = newTUIModel(settings, "")
	m.useTimer(clock.NewFake(time.Unix(0, 0)), time.Second)
	cmd := m.Init()
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Equal(t, cadence.StatusRunning, m.ctl.Status())
}

func TestViewHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, lipgloss.Color("#a855f7"), colorForType(cadence.MeditationBlock))
	assert.Equal(t, colorForType(cadence.FocusBlock), colorForType("nap"))

	assert.InDelta(t, 0.0, elapsedFraction(time.Minute, time.Minute), 1e-9)
	assert.InDelta(t, 0.25, elapsedFraction(time.Minute, 45*time.Second), 1e-9)
	assert.InDelta(t, 1.0, elapsedFraction(time.Minute, -time.Second), 1e-9)
	assert.InDelta(t, 0.0, elapsedFraction(0, 0), 1e-9)
}

func TestTUIModel_Sound(t *testing.T) {
	t.Parallel()

	tpl := cadence.SessionTemplate{
		Name: "Sprint",
		Blocks: []cadence.SessionBlock{
			{Label: "Focus", DurationMinutes: 1, Type: cadence.FocusBlock},
			{Label: "Break", DurationMinutes: 0.5, Type: cadence.BreakBlock},
		},
	}

	t.Run("rings at each block end", func(t *testing.T) {
		t.Parallel()

		settings := cadence.DefaultSettings()
		settings.SoundEnabled = true
		fake := clock.NewFake(time.Unix(0, 0))
		m := newTUIModel(settings, tpl.Name)
		rings := 0
		m.ring = func() { rings++ }
		require.NoError(t, m.useEngine(tpl, fake, time.Second))

		m.Update(enterKey)
		m.Update(skipKey)
		assert.Equal(t, 1, rings)
		fake.Advance(30 * time.Second)
		assert.Equal(t, 2, rings)
		assert.True(t, m.done)
	})

	t.Run("silent when disabled", func(t *testing.T) {
		t.Parallel()

		fake := clock.NewFake(time.Unix(0, 0))
		m := newTUIModel(cadence.DefaultSettings(), tpl.Name)
		rings := 0
		m.ring = func() { rings++ }
		require.NoError(t, m.useEngine(tpl, fake, time.Second))

		m.Update(enterKey)
		fake.Advance(90 * time.Second)
		assert.True(t, m.done)
		assert.Zero(t, rings)
	})

	t.Run("bare timer rings when finished", func(t *testing.T) {
		t.Parallel()

		settings := cadence.DefaultSettings()
		settings.SessionMinutes = 1
		settings.SoundEnabled = true
		fake := clock.NewFake(time.Unix(0, 0))
		m := newTUIModel(settings, "1 minute session")
		rings := 0
		m.ring = func() { rings++ }
		m.useTimer(fake, time.Second)

		m.Update(enterKey)
		fake.Advance(59 * time.Second)
		assert.Zero(t, rings)
		fake.Advance(time.Second)
		assert.Equal(t, 1, rings)
	})
}
