package app

import (
	"time"

	"github.com/alexanderramin/waypoint/internal/domain"
)

type ReviewRequest struct {
	Now time.Time
	// ProjectID narrows the review to one project when non-zero.
	ProjectID domain.ItemID
	// IncludeExcluded keeps projects flagged ExcludeFromStats in the
	// project list. They never count towards the summary.
	IncludeExcluded bool
}

type ReviewResponse struct {
	GeneratedAt time.Time
	Projects    []ProjectReview
	Summary     PortfolioSummary
	// Attention lists overdue and due-soon items across all projects in
	// canonical order.
	Attention []AttentionItem
}

type ProjectReview struct {
	ID                 domain.ItemID
	Name               string
	Priority           int
	Tags               []string
	OverallProgress    float64
	TotalPhaseProgress float64
	Start              *time.Time
	End                *time.Time
	DaysLeft           *int
	Risk               domain.RiskLevel
	ExpectedPct        float64
	Phases             int
	Tasks              int
	Subtasks           int
	CompletedTasks     int
	Overdue            []AttentionItem
	DueSoon            []AttentionItem
	Driven             int
	Locked             bool
	Excluded           bool
}

type AttentionItem struct {
	ID          domain.ItemID
	Kind        domain.ItemKind
	Name        string
	ProjectID   domain.ItemID
	ProjectName string
	Priority    int
	End         *time.Time
	DaysLeft    int
	Overdue     bool
	Risk        domain.RiskLevel
	Delegate    string
	DrivenBy    string
}

type PortfolioSummary struct {
	Projects        int
	Excluded        int
	AverageProgress float64
	OnTrack         int
	AtRisk          int
	Critical        int
	Overdue         int
	DueSoon         int
}
