package cadence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExistingRecord(t *testing.T) {
	t.Parallel()

	rec := NewExistingRecord(TaskID("t1"))
	assert.Equal(t, TaskID("t1"), rec.ID)
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
	assert.Zero(t, rec.CreatedAt.Nanosecond())
	// stored rows come back through time.Unix
	assert.Equal(t, rec.CreatedAt, time.Unix(rec.CreatedAt.Unix(), 0))

	created := rec.CreatedAt
	rec.Touch()
	assert.Equal(t, created, rec.CreatedAt)
	assert.False(t, rec.UpdatedAt.Before(created))
	assert.Zero(t, rec.UpdatedAt.Nanosecond())
}
