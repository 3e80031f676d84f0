package service

import (
	"github.com/alexanderramin/waypoint/internal/app"
	"github.com/alexanderramin/waypoint/internal/testutil"
)

func draftProject(name string) app.ProjectDraft {
	return app.ProjectDraft{Name: name}
}

func draftDays(name string, start, end int) app.ItemDraft {
	return app.ItemDraft{Name: name, Start: testutil.DayPtr(start), End: testutil.DayPtr(end)}
}

func draft(name string) app.ItemDraft {
	return app.ItemDraft{Name: name}
}
