package cadence

import (
	"fmt"
	"time"
)

const (
	DefaultSessionMinutes = 25
	MinSessionMinutes     = 1
	MaxSessionMinutes     = 180
	DefaultTickInterval   = 250 * time.Millisecond
)

type Theme string

const (
	DarkTheme  Theme = "dark"
	LightTheme Theme = "light"
)

type TimerMode string

const (
	DigitalMode TimerMode = "digital"
	BarMode     TimerMode = "bar"
)

// Settings are the user preferences the timer UI reads.
type Settings struct {
	SessionMinutes       int
	AutoStart            bool
	SoundEnabled         bool
	NotificationsEnabled bool
	Theme                Theme
	TimerMode            TimerMode
}

func DefaultSettings() Settings {
	return Settings{
		SessionMinutes: DefaultSessionMinutes,
		Theme:          DarkTheme,
		TimerMode:      DigitalMode,
	}
}

// ClampMinutes bounds a user supplied session length.
func ClampMinutes(m int) int {
	return min(MaxSessionMinutes, max(MinSessionMinutes, m))
}

// FormatClock renders d as mm:ss, flooring to the second.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
