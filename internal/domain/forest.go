package domain

import (
	"encoding/json"
	"time"
)

// ItemID identifies a project, phase, task or subtask. All four share one
// namespace because dependency edges reference items by bare id.
type ItemID int64

type ItemKind string

const (
	KindProject ItemKind = "project"
	KindPhase   ItemKind = "phase"
	KindTask    ItemKind = "task"
	KindSubtask ItemKind = "subtask"
)

// Schedule holds the date, lock and dependency state shared by phases, tasks
// and subtasks. Effective*, IsDriven and DriverName are written only by the
// scheduler.
type Schedule struct {
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	Locked        bool       `json:"locked,omitempty"`
	PredecessorID *ItemID    `json:"predecessorId,omitempty"`
	Dependents    []ItemID   `json:"dependents,omitempty"`

	EffectiveStart *time.Time `json:"effectiveStartDate,omitempty"`
	EffectiveEnd   *time.Time `json:"effectiveEndDate,omitempty"`
	IsDriven       bool       `json:"isDriven,omitempty"`
	DriverName     string     `json:"driverName,omitempty"`
}

// ResolvedEnd is the end date successors start from.
func (s *Schedule) ResolvedEnd() *time.Time {
	if s.EffectiveEnd != nil {
		return s.EffectiveEnd
	}
	return s.EndDate
}

type Comment struct {
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type Subtask struct {
	ID        ItemID `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Schedule
}

type Task struct {
	ID        ItemID     `json:"id"`
	Name      string     `json:"name"`
	Completed bool       `json:"completed"`
	Delegate  string     `json:"delegate,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	Comments  []Comment  `json:"comments,omitempty"`
	Subtasks  []*Subtask `json:"subtasks,omitempty"`
	Progress  float64    `json:"progress"`
	Schedule
}

type Phase struct {
	ID        ItemID    `json:"id"`
	Name      string    `json:"name"`
	Tags      []string  `json:"tags,omitempty"`
	Comments  []Comment `json:"comments,omitempty"`
	Tasks     []*Task   `json:"tasks,omitempty"`
	Progress  float64   `json:"progress"`
	Completed bool      `json:"completed"`
	Schedule
}

type Project struct {
	ID               ItemID     `json:"id"`
	Name             string     `json:"name"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	Priority         int        `json:"priority"`
	Locked           bool       `json:"locked,omitempty"`
	ExcludeFromStats bool       `json:"excludeFromStats,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
	Comments         []Comment  `json:"comments,omitempty"`
	Phases           []*Phase   `json:"phases,omitempty"`
	GeneralTasks     []*Task    `json:"generalTasks,omitempty"`

	OverallProgress    float64    `json:"overallProgress"`
	TotalPhaseProgress float64    `json:"totalPhaseProgress"`
	EffectiveStart     *time.Time `json:"effectiveStartDate,omitempty"`
	EffectiveEnd       *time.Time `json:"effectiveEndDate,omitempty"`
}

// Forest is the whole tracked hierarchy.
type Forest struct {
	Projects  []*Project `json:"projects"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// AllTasks returns the project's phase tasks followed by its general tasks.
func (p *Project) AllTasks() []*Task {
	var tasks []*Task
	for _, ph := range p.Phases {
		tasks = append(tasks, ph.Tasks...)
	}
	return append(tasks, p.GeneralTasks...)
}

// IsLeaf reports whether the task is authoritative for its own dates and
// completion.
func (t *Task) IsLeaf() bool {
	return len(t.Subtasks) == 0
}

// Item is the view of a schedulable entity used by the index and scheduler.
type Item interface {
	ItemID() ItemID
	Kind() ItemKind
	DisplayName() string
	Sched() *Schedule
}

func (p *Phase) ItemID() ItemID      { return p.ID }
func (p *Phase) Kind() ItemKind      { return KindPhase }
func (p *Phase) DisplayName() string { return p.Name }
func (p *Phase) Sched() *Schedule    { return &p.Schedule }

func (t *Task) ItemID() ItemID      { return t.ID }
func (t *Task) Kind() ItemKind      { return KindTask }
func (t *Task) DisplayName() string { return t.Name }
func (t *Task) Sched() *Schedule    { return &t.Schedule }

func (s *Subtask) ItemID() ItemID      { return s.ID }
func (s *Subtask) Kind() ItemKind      { return KindSubtask }
func (s *Subtask) DisplayName() string { return s.Name }
func (s *Subtask) Sched() *Schedule    { return &s.Schedule }

// Items lists every phase, task and subtask in forest order: per project its
// phases (each followed by its tasks and their subtasks), then general tasks.
func (f *Forest) Items() []Item {
	var items []Item
	addTask := func(t *Task) {
		items = append(items, t)
		for _, s := range t.Subtasks {
			items = append(items, s)
		}
	}
	for _, p := range f.Projects {
		for _, ph := range p.Phases {
			items = append(items, ph)
			for _, t := range ph.Tasks {
				addTask(t)
			}
		}
		for _, t := range p.GeneralTasks {
			addTask(t)
		}
	}
	return items
}

// Clone returns a deep copy through the persisted JSON shape.
func (f *Forest) Clone() (*Forest, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	var out Forest
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
