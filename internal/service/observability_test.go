package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUseCaseObserver_WritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:      "link",
		Workspace: "home",
		Duration:  12 * time.Millisecond,
		Success:   true,
		Fields:    map[string]any{"successor": 1002, "predecessor": 1001, "converged": true},
	})

	line := buf.String()
	assert.Contains(t, line, "level=INFO")
	assert.Contains(t, line, "msg=waypoint_use_case")
	assert.Contains(t, line, "use_case=link workspace=home duration_ms=12 success=true converged=true predecessor=1001 successor=1002")
}

func TestLogUseCaseObserver_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "link", Err: errors.New("boom")})

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestNewLogUseCaseObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestMutate_EventCarriesWorkspace(t *testing.T) {
	s := setupServices(t)

	_, err := s.planner.AddProject(context.Background(), draftProject("Launch"))
	require.NoError(t, err)

	ev := s.observer.last()
	assert.Equal(t, "add-project", ev.Name)
	assert.Equal(t, testWorkspace, ev.Workspace)
	assert.True(t, ev.Success)
}
