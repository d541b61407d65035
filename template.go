package cadence

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrEmptyTemplate    = errors.New("template has no blocks")
	ErrInvalidRepeat    = errors.New("template repeat must not be negative")
	ErrInvalidDuration  = errors.New("block duration must be positive")
	ErrInvalidBlockType = errors.New("unknown block type")
)

// SessionBlock is one timed segment of a session.
type SessionBlock struct {
	Label           string
	DurationMinutes float64
	Type            BlockType
}

func (b SessionBlock) Duration() time.Duration {
	return time.Duration(b.DurationMinutes * float64(time.Minute))
}

// SessionTemplate is a reusable schedule: blocks played in order, Repeat times.
// A zero Repeat is treated as 1.
type SessionTemplate struct {
	ID     TemplateID
	Name   string
	Blocks []SessionBlock
	Repeat int
}

func (t SessionTemplate) Cycles() int {
	return max(1, t.Repeat)
}

func (t SessionTemplate) Validate() error {
	var errs []error
	if len(t.Blocks) == 0 {
		errs = append(errs, ErrEmptyTemplate)
	}
	if t.Repeat < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidRepeat, t.Repeat))
	}
	for i, b := range t.Blocks {
		if !(b.DurationMinutes > 0) || math.IsInf(b.DurationMinutes, 0) {
			errs = append(errs, fmt.Errorf("block %d %q: %w", i, b.Label, ErrInvalidDuration))
		}
		if !b.Type.Valid() {
			errs = append(errs, fmt.Errorf("block %d %q: %w: %q", i, b.Label, ErrInvalidBlockType, b.Type))
		}
	}
	return errors.Join(errs...)
}

// TotalMinutes is the length of a full run including repeats, rounded to the minute.
func TotalMinutes(t SessionTemplate) int {
	var per float64
	for _, b := range t.Blocks {
		per += b.DurationMinutes
	}
	return int(math.Round(per * float64(t.Cycles())))
}

// DominantType returns the block type holding the most minutes. Ties go to the
// type listed first in BlockTypes.
func DominantType(t SessionTemplate) BlockType {
	totals := make(map[BlockType]float64, len(BlockTypes))
	for _, b := range t.Blocks {
		totals[b.Type] += b.DurationMinutes
	}
	best := FocusBlock
	bestVal := -1.0
	for _, bt := range BlockTypes {
		if v := totals[bt]; v > bestVal {
			best, bestVal = bt, v
		}
	}
	return best
}
