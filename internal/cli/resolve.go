package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

// parseID accepts "123" or "#123".
func parseID(input string) (domain.ItemID, error) {
	n, err := strconv.ParseInt(strings.TrimPrefix(input, "#"), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid id %q", input)
	}
	return domain.ItemID(n), nil
}

// parseIDs parses every argument with parseID.
func parseIDs(inputs []string) ([]domain.ItemID, error) {
	ids := make([]domain.ItemID, len(inputs))
	for i, in := range inputs {
		id, err := parseID(in)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// resolveProjectID resolves a project identifier which can be:
//   - A numeric id (optionally prefixed with #)
//   - An exact project name (case-insensitive)
//   - An unambiguous name prefix
func resolveProjectID(ctx context.Context, app *App, input string) (domain.ItemID, error) {
	if input == "" {
		return 0, fmt.Errorf("project is required")
	}
	if id, err := parseID(input); err == nil {
		return id, nil
	}

	forest, err := app.Planner.Forest(ctx)
	if err != nil {
		return 0, err
	}

	for _, p := range forest.Projects {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}

	var matches []domain.ItemID
	lower := strings.ToLower(input)
	for _, p := range forest.Projects {
		if strings.HasPrefix(strings.ToLower(p.Name), lower) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return 0, fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return 0, fmt.Errorf("project name %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveProject resolves input and returns the recomputed project.
func resolveProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	id, err := resolveProjectID(ctx, app, input)
	if err != nil {
		return nil, err
	}
	forest, err := app.Planner.Forest(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := domain.NewIndex(forest).Project(id)
	if !ok {
		return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// parseDateFlag parses a YYYY-MM-DD flag value. "" and "-" mean no date.
func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "-" {
		return nil, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

func optionalID(flag string, value int64) (*domain.ItemID, error) {
	if value == 0 {
		return nil, nil
	}
	if value < 0 {
		return nil, fmt.Errorf("--%s: invalid id %d", flag, value)
	}
	id := domain.ItemID(value)
	return &id, nil
}
