// Package schedule sequences a template's blocks into one continuous countdown.
package schedule

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/cadence"
	"github.com/benjamonnguyen/cadence/clock"
	"github.com/benjamonnguyen/cadence/timer"
)

type Option func(*Engine)

func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.interval = d
	}
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.l = l
	}
}

// Engine runs a template's blocks in order, Cycles() times, driving one countdown
// timer per block. Like timer.Timer it is not safe for concurrent use: commands and
// clock callbacks must arrive on one goroutine.
type Engine struct {
	clock    clock.Clock
	interval time.Duration
	l        *log.Logger
	events   Events

	template        cadence.SessionTemplate
	timer           *timer.Timer
	blockIndex      int
	remainingCycles int
	status          cadence.Status
}

func New(tpl cadence.SessionTemplate, events Events, opts ...Option) (*Engine, error) {
	if err := tpl.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template %q: %w", tpl.Name, err)
	}
	e := &Engine{
		clock:           clock.System,
		interval:        cadence.DefaultTickInterval,
		l:               log.Default(),
		events:          events,
		template:        tpl,
		remainingCycles: tpl.Cycles(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Status() cadence.Status {
	return e.status
}

func (e *Engine) Template() cadence.SessionTemplate {
	return e.template
}

func (e *Engine) BlockIndex() int {
	return e.blockIndex
}

func (e *Engine) RemainingCycles() int {
	return e.remainingCycles
}

// Remaining is the current block's remaining time; the full block when none is active.
func (e *Engine) Remaining() time.Duration {
	if e.timer == nil {
		return e.CurrentBlock().Duration()
	}
	return e.timer.Remaining()
}

func (e *Engine) CurrentBlock() cadence.SessionBlock {
	return e.template.Blocks[e.blockIndex]
}

// NextBlock returns the block that plays after the current one. ok is false when the
// schedule completes instead.
func (e *Engine) NextBlock() (block cadence.SessionBlock, ok bool) {
	if i := e.blockIndex + 1; i < len(e.template.Blocks) {
		return e.template.Blocks[i], true
	}
	if e.remainingCycles-1 > 0 {
		return e.template.Blocks[0], true
	}
	return cadence.SessionBlock{}, false
}

// Start begins the current block, or resumes it after Pause. No-op while running.
func (e *Engine) Start() {
	if e.status == cadence.StatusRunning {
		return
	}
	e.status = cadence.StatusRunning
	if e.timer == nil {
		e.beginBlock()
	} else {
		e.timer.Start()
	}
}

func (e *Engine) Pause() {
	if e.status != cadence.StatusRunning {
		return
	}
	e.status = cadence.StatusPaused
	if e.timer != nil {
		e.timer.Pause()
	}
	e.l.Debug("paused", "index", e.blockIndex, "remaining", e.Remaining())
}

// Reset discards the active block's progress and emits one tick with the current
// block's full duration.
func (e *Engine) Reset() {
	e.discardTimer()
	e.status = cadence.StatusIdle
	e.events.tick(e.CurrentBlock().Duration())
}

// ResetTemplate replaces the template, rewinds to its first block and full cycle
// count, then resets.
func (e *Engine) ResetTemplate(tpl cadence.SessionTemplate) error {
	if err := tpl.Validate(); err != nil {
		return fmt.Errorf("invalid template %q: %w", tpl.Name, err)
	}
	e.template = tpl
	e.blockIndex = 0
	e.remainingCycles = tpl.Cycles()
	e.l.Debug("template loaded", "id", tpl.ID, "name", tpl.Name, "cycles", e.remainingCycles)
	e.Reset()
	return nil
}

// Skip finishes the current block now, exactly as if its timer had run out.
func (e *Engine) Skip() {
	e.l.Debug("skipping block", "index", e.blockIndex)
	e.finishBlock()
}

// Extend adds minutes (at least 1) to the active block's remaining time and keeps it
// running, resuming it if it was paused. No-op without an active block.
func (e *Engine) Extend(minutes int) {
	if e.timer == nil {
		return
	}
	extra := time.Duration(max(1, minutes)) * time.Minute
	d := e.timer.Remaining() + extra
	e.timer.ResetTo(d)
	e.timer.Start()
	e.status = cadence.StatusRunning
	e.l.Debug("extended block", "index", e.blockIndex, "remaining", d)
}

// beginBlock arms the current block's timer, announces the block, then starts the
// timer. A handler may command the engine from OnBlockStart: if it moved to another
// block, reset, or paused, the timer is left as the handler left it.
func (e *Engine) beginBlock() {
	i, block := e.blockIndex, e.CurrentBlock()
	e.l.Debug("block started", "index", i, "label", block.Label, "type", block.Type, "cycle", e.template.Cycles()-e.remainingCycles+1)

	var t *timer.Timer
	t = timer.New(block.Duration(), e.clock,
		timer.WithInterval(e.interval),
		timer.OnTick(func(d time.Duration) {
			if e.timer == t {
				e.events.tick(d)
			}
		}),
		timer.OnFinish(func() {
			if e.timer == t {
				e.finishBlock()
			}
		}),
	)
	e.timer = t
	e.events.blockStart(i, block)

	if e.timer != t || e.status != cadence.StatusRunning {
		return
	}
	t.Start()
}

func (e *Engine) finishBlock() {
	i, block := e.blockIndex, e.CurrentBlock()
	e.l.Debug("block ended", "index", i, "label", block.Label)
	e.events.blockEnd(i, block)
	e.discardTimer()

	e.blockIndex++
	if e.blockIndex >= len(e.template.Blocks) {
		e.blockIndex = 0
		e.remainingCycles--
		if e.remainingCycles <= 0 {
			// rewind so a later Start replays the whole template
			e.remainingCycles = e.template.Cycles()
			e.status = cadence.StatusIdle
			e.l.Info("schedule complete", "template", e.template.Name)
			e.events.complete()
			return
		}
	}
	e.status = cadence.StatusRunning
	e.beginBlock()
}

func (e *Engine) discardTimer() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}
