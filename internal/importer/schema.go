package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// FormatVersion is written by exports and accepted by imports.
const FormatVersion = 1

// ExportDocument is the JSON envelope for a full workspace export. Imports
// of this shape replace the whole forest.
type ExportDocument struct {
	Version    int               `json:"version"`
	ExportedAt time.Time         `json:"exportedAt"`
	Projects   []*domain.Project `json:"projects"`
}

// PlanSchema describes a single project by reference names. Imports of this
// shape add one project with freshly generated ids.
type PlanSchema struct {
	Project      ProjectImport      `json:"project"`
	Phases       []PhaseImport      `json:"phases,omitempty"`
	Tasks        []TaskImport       `json:"tasks,omitempty"`
	Dependencies []DependencyImport `json:"dependencies,omitempty"`
}

type ProjectImport struct {
	Name      string   `json:"name"`
	StartDate *string  `json:"start_date,omitempty"`
	EndDate   *string  `json:"end_date,omitempty"`
	Priority  int      `json:"priority,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

type PhaseImport struct {
	Ref       string   `json:"ref"`
	Name      string   `json:"name"`
	StartDate *string  `json:"start_date,omitempty"`
	EndDate   *string  `json:"end_date,omitempty"`
	Locked    bool     `json:"locked,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// TaskImport is a task under a phase, or a general task when PhaseRef is
// empty.
type TaskImport struct {
	Ref       string          `json:"ref"`
	PhaseRef  string          `json:"phase_ref,omitempty"`
	Name      string          `json:"name"`
	StartDate *string         `json:"start_date,omitempty"`
	EndDate   *string         `json:"end_date,omitempty"`
	Completed bool            `json:"completed,omitempty"`
	Locked    bool            `json:"locked,omitempty"`
	Delegate  string          `json:"delegate,omitempty"`
	Tags      []string        `json:"tags,omitempty"`
	Subtasks  []SubtaskImport `json:"subtasks,omitempty"`
}

type SubtaskImport struct {
	Ref       string  `json:"ref"`
	Name      string  `json:"name"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Completed bool    `json:"completed,omitempty"`
}

// DependencyImport names a predecessor and successor by ref. Each successor
// may appear at most once.
type DependencyImport struct {
	PredecessorRef string `json:"predecessor_ref"`
	SuccessorRef   string `json:"successor_ref"`
}

// Payload is a decoded import file: exactly one of Export and Plan is set.
type Payload struct {
	Export *ExportDocument
	Plan   *PlanSchema
}

// LoadFile reads an import file and decides its shape from the top-level
// keys: "projects" is a full export, "project" is a plan.
func LoadFile(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func Decode(data []byte) (*Payload, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	switch {
	case probe["projects"] != nil:
		var doc ExportDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing export document: %w", err)
		}
		return &Payload{Export: &doc}, nil
	case probe["project"] != nil:
		var plan PlanSchema
		if err := json.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("parsing plan: %w", err)
		}
		return &Payload{Plan: &plan}, nil
	default:
		return nil, fmt.Errorf("import file has neither \"projects\" nor \"project\" at the top level")
	}
}
