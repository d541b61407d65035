package cadence

import "time"

// ExistingRecord is the identity and timestamps of a stored row. Times carry second
// precision, matching what the repos persist.
type ExistingRecord[T ~string] struct {
	ID        T
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewExistingRecord[T ~string](id T) ExistingRecord[T] {
	now := recordTime()
	return ExistingRecord[T]{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps UpdatedAt, keeping CreatedAt.
func (r *ExistingRecord[T]) Touch() {
	r.UpdatedAt = recordTime()
}

func recordTime() time.Time {
	return time.Now().Truncate(time.Second)
}
