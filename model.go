package cadence

type Status uint8

const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	default:
		return "unknown"
	}
}

type BlockType string

const (
	FocusBlock      BlockType = "focus"
	BreakBlock      BlockType = "break"
	MeditationBlock BlockType = "meditation"
	WorkoutBlock    BlockType = "workout"
	RestBlock       BlockType = "rest"
	CustomBlock     BlockType = "custom"
)

// BlockTypes lists every BlockType in display order.
var BlockTypes = []BlockType{
	FocusBlock,
	BreakBlock,
	MeditationBlock,
	WorkoutBlock,
	RestBlock,
	CustomBlock,
}

func (t BlockType) Valid() bool {
	switch t {
	case FocusBlock, BreakBlock, MeditationBlock, WorkoutBlock, RestBlock, CustomBlock:
		return true
	default:
		return false
	}
}

type (
	TemplateID string
	TaskID     string
)

type ExistingTemplateRecord struct {
	ExistingRecord[TemplateID]
	Template SessionTemplate
}

type TaskRecord struct {
	Title string
	Done  bool
}

type ExistingTaskRecord struct {
	ExistingRecord[TaskID]
	TaskRecord
}
