package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/waypoint/internal/testutil"
	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences so assertions see plain text.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func plain(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRelativeDateFrom(t *testing.T) {
	now := testutil.Day(0).Add(15 * time.Hour)
	tests := []struct {
		day  int
		want string
	}{
		{0, "Today"},
		{1, "Tomorrow"},
		{-1, "Yesterday"},
		{5, "In 5d"},
		{21, "In 3w"},
		{90, "In 3mo"},
		{-10, "10d ago"},
		{-28, "4w ago"},
		{-120, "4mo ago"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(testutil.Day(tt.day), now))
		})
	}
}

func TestRangeCell(t *testing.T) {
	assert.Equal(t, "undated", plain(RangeCell(nil, nil)))
	assert.Equal(t, "2025-01-01 → --", plain(RangeCell(testutil.DayPtr(0), nil)))
	assert.Equal(t, "2025-01-01 → 2025-01-11", plain(RangeCell(testutil.DayPtr(0), testutil.DayPtr(10))))
}

func TestDaysLeftCell(t *testing.T) {
	days := func(n int) *int { return &n }
	assert.Equal(t, "--", plain(DaysLeftCell(nil)))
	assert.Equal(t, "3d late", plain(DaysLeftCell(days(-3))))
	assert.Equal(t, "12d", plain(DaysLeftCell(days(12))))
}

func TestTags(t *testing.T) {
	assert.Empty(t, Tags(nil))
	assert.Equal(t, "#ops #q3", plain(Tags([]string{"ops", "q3"})))
}
