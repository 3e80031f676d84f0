package scheduler

import (
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

type RiskInput struct {
	Now time.Time
	// Start and End are the effective range after rollup.
	Start *time.Time
	End   *time.Time
	// ProgressPct is the rolled-up completion, 0-100.
	ProgressPct float64
	// OverdueItems counts open items whose end date has passed.
	OverdueItems int
	// DueSoonWeekdays is the horizon inside which an unfinished range is
	// flagged even when on pace.
	DueSoonWeekdays int
}

type RiskResult struct {
	Level    domain.RiskLevel
	DaysLeft *int
	// ExpectedPct is the share of the weekday range already elapsed. Zero
	// when the range is not fully dated.
	ExpectedPct float64
	// PaceGap is ExpectedPct minus progress; positive means behind.
	PaceGap float64
}

const (
	criticalPaceGap = 40
	atRiskPaceGap   = 15
)

func ComputeRisk(input RiskInput) RiskResult {
	var result RiskResult
	if input.End == nil {
		result.Level = domain.RiskOnTrack
		if input.OverdueItems > 0 && input.ProgressPct < 100 {
			result.Level = domain.RiskAtRisk
		}
		return result
	}

	daysLeft, _ := domain.DaysLeft(input.Now, input.End)
	result.DaysLeft = &daysLeft

	if input.ProgressPct >= 100 {
		result.Level = domain.RiskOnTrack
		return result
	}

	// Past the end date with work remaining
	if domain.DateOf(input.Now).After(domain.DateOf(*input.End)) {
		result.Level = domain.RiskCritical
		return result
	}

	if input.Start != nil {
		total := domain.WeekdaysBetween(*input.Start, *input.End)
		if total > 0 {
			elapsed := min(max(domain.WeekdaysBetween(*input.Start, input.Now), 0), total)
			result.ExpectedPct = float64(elapsed) / float64(total) * 100
			result.PaceGap = result.ExpectedPct - input.ProgressPct
		}
	}

	switch {
	case result.PaceGap >= criticalPaceGap:
		result.Level = domain.RiskCritical
	case result.PaceGap >= atRiskPaceGap:
		result.Level = domain.RiskAtRisk
	case input.OverdueItems > 0:
		result.Level = domain.RiskAtRisk
	case daysLeft <= input.DueSoonWeekdays && input.ProgressPct < 50:
		result.Level = domain.RiskAtRisk
	default:
		result.Level = domain.RiskOnTrack
	}

	return result
}
