package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Day 0 (2025-01-01) is a Wednesday; day 14 is the Wednesday two weeks on,
// ten weekdays later.

func TestComputeRisk_NoEndDate(t *testing.T) {
	result := ComputeRisk(RiskInput{Now: testutil.Day(3), ProgressPct: 10})

	assert.Equal(t, domain.RiskOnTrack, result.Level)
	assert.Nil(t, result.DaysLeft)
}

func TestComputeRisk_NoEndDateWithOverdueItems(t *testing.T) {
	result := ComputeRisk(RiskInput{Now: testutil.Day(3), OverdueItems: 2})
	assert.Equal(t, domain.RiskAtRisk, result.Level)
}

func TestComputeRisk_PastEnd(t *testing.T) {
	result := ComputeRisk(RiskInput{
		Now:         testutil.Day(15).Add(12 * time.Hour),
		End:         testutil.DayPtr(14),
		ProgressPct: 90,
	})

	assert.Equal(t, domain.RiskCritical, result.Level)
	require.NotNil(t, result.DaysLeft)
	assert.Equal(t, -1, *result.DaysLeft)
}

func TestComputeRisk_CompleteIsOnTrackEvenWhenPast(t *testing.T) {
	result := ComputeRisk(RiskInput{
		Now:         testutil.Day(30),
		End:         testutil.DayPtr(14),
		ProgressPct: 100,
	})
	assert.Equal(t, domain.RiskOnTrack, result.Level)
}

func TestComputeRisk_BehindPace(t *testing.T) {
	cases := []struct {
		name     string
		progress float64
		want     domain.RiskLevel
	}{
		{"far behind", 0, domain.RiskCritical},
		{"somewhat behind", 30, domain.RiskAtRisk},
		{"on pace", 50, domain.RiskOnTrack},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Day 7 is five weekdays into a ten-weekday range: 50% expected.
			result := ComputeRisk(RiskInput{
				Now:         testutil.Day(7),
				Start:       testutil.DayPtr(0),
				End:         testutil.DayPtr(14),
				ProgressPct: tc.progress,
			})
			assert.InDelta(t, 50.0, result.ExpectedPct, 0.001)
			assert.Equal(t, tc.want, result.Level)
		})
	}
}

func TestComputeRisk_DueSoonWithLittleDone(t *testing.T) {
	result := ComputeRisk(RiskInput{
		Now:             testutil.Day(12),
		End:             testutil.DayPtr(14),
		ProgressPct:     40,
		DueSoonWeekdays: 5,
	})
	assert.Equal(t, domain.RiskAtRisk, result.Level)
}

func TestComputeRisk_OverdueChildFlagsProject(t *testing.T) {
	result := ComputeRisk(RiskInput{
		Now:          testutil.Day(0),
		End:          testutil.DayPtr(30),
		ProgressPct:  60,
		OverdueItems: 1,
	})
	assert.Equal(t, domain.RiskAtRisk, result.Level)
}

func TestComputeRisk_BeforeStartExpectsNothing(t *testing.T) {
	result := ComputeRisk(RiskInput{
		Now:   testutil.Day(-10),
		Start: testutil.DayPtr(0),
		End:   testutil.DayPtr(14),
	})
	assert.Zero(t, result.ExpectedPct)
	assert.Equal(t, domain.RiskOnTrack, result.Level)
}
