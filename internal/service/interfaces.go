package service

import "github.com/alexanderramin/waypoint/internal/app"

type PlannerService interface {
	app.PlannerUseCase
}

type HistoryService interface {
	app.HistoryUseCase
}

type ReviewService interface {
	app.ReviewUseCase
}

type ExportService interface {
	app.ExportUseCase
}

type PunchService interface {
	app.PunchUseCase
}
