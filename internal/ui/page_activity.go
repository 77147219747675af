package ui

import (
	"fmt"

	"sheetdesk/internal/domain"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

func activityPage(entries []domain.ActivityEntry) Node {
	if len(entries) == 0 {
		return appPage("Activity", "activity",
			emptyStateCard("No activity recorded yet. Open a sheet or append a row to get started.", "Browse sheets", "/sheets"),
		)
	}

	rows := make([]Node, 0, len(entries))
	for i := range entries {
		e := entries[i]
		rows = append(rows, Tr(
			data.Show(containsExpr(e.Action+" "+e.SheetName+" "+e.Detail)),
			Td(Text(formatTime(e.CreatedAt))),
			Td(statusLabel(e.Action, activityTone(e.Action))),
			Td(Text(e.SheetName)),
			Td(Text(e.Detail)),
			Td(Text(fmt.Sprintf("%d", e.RowCount))),
		))
	}

	return appPage("Activity", "activity",
		quickFilterCard("Filter activity"),
		Div(
			Class(cardClass("table-wrap")),
			Table(
				THead(Tr(Th(Text("When")), Th(Text("Action")), Th(Text("Sheet")), Th(Text("Detail")), Th(Text("Rows")))),
				TBody(Group(rows)),
			),
		),
	)
}

func activityTone(action string) string {
	switch action {
	case domain.ActivityActionRowAppended:
		return "success"
	case domain.ActivityActionSheetViewed:
		return "accent"
	default:
		return ""
	}
}
