package cadence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionTemplate_Validate(t *testing.T) {
	t.Parallel()

	focus := SessionBlock{Label: "Focus", DurationMinutes: 25, Type: FocusBlock}

	testCases := []struct {
		name     string
		tpl      SessionTemplate
		wantErrs []error
	}{
		{
			name: "valid",
			tpl:  SessionTemplate{Blocks: []SessionBlock{focus}, Repeat: 2},
		},
		{
			name: "zero repeat is unset",
			tpl:  SessionTemplate{Blocks: []SessionBlock{focus}},
		},
		{
			name:     "empty",
			tpl:      SessionTemplate{},
			wantErrs: []error{ErrEmptyTemplate},
		},
		{
			name:     "negative repeat",
			tpl:      SessionTemplate{Blocks: []SessionBlock{focus}, Repeat: -1},
			wantErrs: []error{ErrInvalidRepeat},
		},
		{
			name: "bad blocks are all reported",
			tpl: SessionTemplate{Blocks: []SessionBlock{
				{Label: "zero", DurationMinutes: 0, Type: FocusBlock},
				{Label: "nap", DurationMinutes: 5, Type: "nap"},
			}},
			wantErrs: []error{ErrInvalidDuration, ErrInvalidBlockType},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.tpl.Validate()
			if len(tc.wantErrs) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tc.wantErrs {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestSessionTemplate_Cycles(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, SessionTemplate{}.Cycles())
	assert.Equal(t, 1, SessionTemplate{Repeat: 1}.Cycles())
	assert.Equal(t, 8, SessionTemplate{Repeat: 8}.Cycles())
}

func TestTotalMinutes(t *testing.T) {
	t.Parallel()

	tpl := SessionTemplate{
		Blocks: []SessionBlock{
			{DurationMinutes: 5, Type: WorkoutBlock},
			{DurationMinutes: 0.75, Type: WorkoutBlock},
			{DurationMinutes: 0.25, Type: RestBlock},
		},
		Repeat: 8,
	}
	assert.Equal(t, 48, TotalMinutes(tpl))
}

func TestDominantType(t *testing.T) {
	t.Parallel()

	tpl := SessionTemplate{Blocks: []SessionBlock{
		{DurationMinutes: 25, Type: FocusBlock},
		{DurationMinutes: 5, Type: BreakBlock},
		{DurationMinutes: 30, Type: MeditationBlock},
	}}
	assert.Equal(t, MeditationBlock, DominantType(tpl))

	// ties go to the earlier type
	tie := SessionTemplate{Blocks: []SessionBlock{
		{DurationMinutes: 10, Type: RestBlock},
		{DurationMinutes: 10, Type: BreakBlock},
	}}
	assert.Equal(t, BreakBlock, DominantType(tie))
}

func TestFormatClock(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{999 * time.Millisecond, "00:00"},
		{61 * time.Second, "01:01"},
		{25 * time.Minute, "25:00"},
		{180 * time.Minute, "180:00"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, FormatClock(tc.in), tc.in.String())
	}
}

func TestClampMinutes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, MinSessionMinutes, ClampMinutes(0))
	assert.Equal(t, 25, ClampMinutes(25))
	assert.Equal(t, MaxSessionMinutes, ClampMinutes(1000))
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "running", StatusRunning.String())
	assert.Equal(t, "paused", StatusPaused.String())
}
