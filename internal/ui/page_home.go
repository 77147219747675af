package ui

import (
	"fmt"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"
)

type overviewPageData struct {
	Path       string
	SheetCount int
	Sheets     []string
}

func overviewPage(d overviewPageData) gomponents.Node {
	sheetLinks := make([]gomponents.Node, 0, len(d.Sheets))
	for i := range d.Sheets {
		name := d.Sheets[i]
		sheetLinks = append(sheetLinks, html.Li(
			html.A(html.Href(sheetURL(name)), gomponents.Text(name)),
			gomponents.Text(fmt.Sprintf(" (sheet %d)", i+1)),
		))
	}

	sheetsCard := gomponents.Node(html.Div(
		html.Class(cardClass()),
		html.H2(gomponents.Text("Sheets")),
		html.Ul(gomponents.Group(sheetLinks)),
	))
	if len(d.Sheets) == 0 {
		sheetsCard = emptyStateCard("The workbook contains no sheets.", "", "")
	}

	return appPage("Overview", "home",
		html.Div(
			html.Class(cardClass()),
			html.H2(gomponents.Text("Workbook")),
			html.P(html.Code(gomponents.Text(d.Path)), gomponents.Text(" "), statusLabel("Ready", "success")),
			html.P(html.Class(mutedClass()), gomponents.Text(fmt.Sprintf("%d sheet(s). Rows you append are written straight back to this file.", d.SheetCount))),
		),
		sheetsCard,
	)
}

func missingWorkbookPage(path, message string) gomponents.Node {
	return appPage("Overview", "home",
		html.Div(
			html.Class(cardClass()),
			html.H2(gomponents.Text("Workbook")),
			html.P(html.Code(gomponents.Text(path)), gomponents.Text(" "), statusLabel("Missing", "danger")),
			html.P(gomponents.Text(message)),
			html.P(html.Class(mutedClass()), gomponents.Text("Sheetdesk opens the workbook fresh on every page load, so no restart is needed once the file exists.")),
		),
	)
}
