package domain

import "errors"

var (
	ErrNotFound         = errors.New("item not found")
	ErrNameRequired     = errors.New("name is required")
	ErrCycle            = errors.New("dependency would create a cycle")
	ErrSelfDependency   = errors.New("an item cannot depend on itself")
	ErrProjectLink      = errors.New("projects cannot take part in dependencies")
	ErrLocked           = errors.New("item is locked")
	ErrHasSubtasks      = errors.New("task dates and completion are derived from its subtasks")
	ErrInvalidPriority  = errors.New("priority must be between 1 and 10")
	ErrInvalidDateRange = errors.New("end date is before start date")
	ErrWrongKind        = errors.New("item has the wrong kind for this operation")
	ErrNothingToUndo    = errors.New("nothing to undo")
	ErrNothingToRedo    = errors.New("nothing to redo")
)
