package templates

import (
	"fmt"
	"time"

	"github.com/benjamonnguyen/cadence"
)

// PomodoroSettings mirror the classic start options: a pomodoro length, short and
// long break lengths, and how many pomodoros run before a long break.
type PomodoroSettings struct {
	Pomodoro   time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
	Intervals  int
	Rounds     int
}

func DefaultPomodoroSettings() PomodoroSettings {
	return PomodoroSettings{
		Pomodoro:   20 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  15 * time.Minute,
		Intervals:  4,
		Rounds:     1,
	}
}

// Pomodoro builds a template of Intervals pomodoros, each followed by a short break
// except every Intervals-th, which gets the long break. Breaks of zero length are
// left out. Rounds becomes the template's repeat count.
func Pomodoro(s PomodoroSettings) (cadence.SessionTemplate, error) {
	if s.Intervals < 1 {
		return cadence.SessionTemplate{}, fmt.Errorf("intervals must be at least 1, got %d", s.Intervals)
	}
	if s.Pomodoro <= 0 {
		return cadence.SessionTemplate{}, fmt.Errorf("pomodoro duration must be positive, got %s", s.Pomodoro)
	}

	tpl := cadence.SessionTemplate{
		ID:     cadence.TemplateID(fmt.Sprintf("pomodoro-%dx%d", int(s.Pomodoro.Minutes()), s.Intervals)),
		Name:   fmt.Sprintf("Pomodoro %dx", s.Intervals),
		Repeat: max(1, s.Rounds),
	}
	completed := 0
	for range s.Intervals {
		tpl.Blocks = append(tpl.Blocks, block("Pomodoro", s.Pomodoro, cadence.FocusBlock))
		completed++

		// after a pomodoro, the break type depends on completed pomodoros
		if completed%s.Intervals == 0 {
			if s.LongBreak > 0 {
				tpl.Blocks = append(tpl.Blocks, block("Long Break", s.LongBreak, cadence.RestBlock))
			}
		} else if s.ShortBreak > 0 {
			tpl.Blocks = append(tpl.Blocks, block("Short Break", s.ShortBreak, cadence.BreakBlock))
		}
	}
	return tpl, tpl.Validate()
}

func block(label string, d time.Duration, t cadence.BlockType) cadence.SessionBlock {
	return cadence.SessionBlock{
		Label:           label,
		DurationMinutes: d.Minutes(),
		Type:            t,
	}
}
