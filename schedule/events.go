package schedule

import (
	"time"

	"github.com/benjamonnguyen/cadence"
)

// Events are the engine's outbound notifications. Any slot may be nil.
type Events struct {
	OnBlockStart func(index int, block cadence.SessionBlock)
	OnTick       func(remaining time.Duration)
	OnBlockEnd   func(index int, block cadence.SessionBlock)
	OnComplete   func()
}

// Chain returns Events that call each of evs in order.
func Chain(evs ...Events) Events {
	return Events{
		OnBlockStart: func(i int, b cadence.SessionBlock) {
			for _, e := range evs {
				if e.OnBlockStart != nil {
					e.OnBlockStart(i, b)
				}
			}
		},
		OnTick: func(d time.Duration) {
			for _, e := range evs {
				if e.OnTick != nil {
					e.OnTick(d)
				}
			}
		},
		OnBlockEnd: func(i int, b cadence.SessionBlock) {
			for _, e := range evs {
				if e.OnBlockEnd != nil {
					e.OnBlockEnd(i, b)
				}
			}
		},
		OnComplete: func() {
			for _, e := range evs {
				if e.OnComplete != nil {
					e.OnComplete()
				}
			}
		},
	}
}

func (e Events) blockStart(i int, b cadence.SessionBlock) {
	if e.OnBlockStart != nil {
		e.OnBlockStart(i, b)
	}
}

func (e Events) tick(d time.Duration) {
	if e.OnTick != nil {
		e.OnTick(d)
	}
}

func (e Events) blockEnd(i int, b cadence.SessionBlock) {
	if e.OnBlockEnd != nil {
		e.OnBlockEnd(i, b)
	}
}

func (e Events) complete() {
	if e.OnComplete != nil {
		e.OnComplete()
	}
}
