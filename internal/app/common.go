package app

import (
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// ProjectDraft carries the user-supplied fields of a new project.
type ProjectDraft struct {
	Name     string
	Start    *time.Time
	End      *time.Time
	Priority int // 0 means the default of 5
	Tags     []string
}

// ItemDraft carries the user-supplied fields of a new phase, task or
// subtask. Fields that do not apply to the kind being created are ignored.
type ItemDraft struct {
	Name          string
	Start         *time.Time
	End           *time.Time
	Locked        bool
	Completed     bool
	Delegate      string
	Tags          []string
	PredecessorID *domain.ItemID
}

type ImportMode string

const (
	ImportReplace ImportMode = "replace"
	ImportAppend  ImportMode = "append"
)

type ImportResult struct {
	Mode         ImportMode
	Projects     int
	Phases       int
	Tasks        int
	Subtasks     int
	Dependencies int
	// Project is set for an appended plan.
	Project *domain.Project
}

type HandoffResult struct {
	TargetID   domain.ItemID
	TargetName string
	Tasks      int
	Subtasks   int
	Created    []domain.ItemID
}

type HistoryDepth struct {
	Undo int
	Redo int
}
