package config

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

var workspaceRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if !workspaceRegex.MatchString(c.Workspace) {
		errs = append(errs, ValidationError{
			Field:   "workspace",
			Value:   c.Workspace,
			Message: "must start with a letter or digit and contain only letters, digits, '.', '_' or '-'",
		})
	}
	if strings.TrimSpace(c.DB.Path) == "" {
		errs = append(errs, ValidationError{
			Field:   "db.path",
			Value:   c.DB.Path,
			Message: "must not be empty",
		})
	}
	if c.History.Limit < 1 {
		errs = append(errs, ValidationError{
			Field:   "history.limit",
			Value:   c.History.Limit,
			Message: "must be at least 1",
		})
	}
	if c.Review.DueSoonWeekdays < 0 {
		errs = append(errs, ValidationError{
			Field:   "review.due_soon_weekdays",
			Value:   c.Review.DueSoonWeekdays,
			Message: "must be non-negative",
		})
	}
	if c.Gantt.Width < 10 || c.Gantt.Width > 400 {
		errs = append(errs, ValidationError{
			Field:   "gantt.width",
			Value:   c.Gantt.Width,
			Message: "must be between 10 and 400",
		})
	}

	return errs
}
