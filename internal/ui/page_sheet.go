package ui

import (
	"fmt"
	"net/url"
	"strings"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"
)

type sheetsPageData struct {
	Sheets    []string
	Selected  string
	Columns   []string
	Rows      [][]string
	RowCount  int
	CSRFField func() Node
}

func sheetURL(name string) string {
	return "/sheets?sheet=" + url.QueryEscape(name)
}

func sheetRowsURL(name string) string {
	return "/sheets/" + url.PathEscape(name) + "/rows"
}

func sheetsPage(d sheetsPageData) Node {
	sections := []Node{sheetPickerCard(d.Sheets, d.Selected)}

	switch {
	case len(d.Sheets) == 0:
		sections = append(sections, emptyStateCard("The workbook contains no sheets.", "", ""))
	case d.Selected == "":
		sections = append(sections, Div(Class(cardClass()), P(Class(mutedClass()), Text("Select a sheet to view its rows."))))
	case len(d.Columns) == 0:
		sections = append(sections, emptyStateCard(
			fmt.Sprintf("Sheet %q has no columns yet. Add a header row to the workbook file to start appending rows.", d.Selected),
			"", "",
		))
	default:
		sections = append(sections,
			quickFilterCard("Filter rows"),
			sheetTableCard(d),
			addRowCard(d),
		)
	}

	return appPage("Sheets", "sheets", Group(sections))
}

func sheetPickerCard(sheets []string, selected string) Node {
	options := make([]Node, 0, len(sheets))
	for _, name := range sheets {
		attrs := []Node{Value(name), Text(name)}
		if name == selected {
			attrs = append(attrs, Selected())
		}
		options = append(options, Option(attrs...))
	}
	return Div(
		Class(cardClass("toolbar")),
		Form(
			Method("get"),
			Action("/sheets"),
			Class("d-flex flex-items-center gap-2"),
			Label(Class(mutedClass()), Text("Sheet")),
			Select(Name("sheet"), Class("form-select"), Group(options)),
			Button(Type("submit"), Class(secondaryButtonClass()), Text("Open")),
		),
	)
}

func sheetTableCard(d sheetsPageData) Node {
	header := make([]Node, 0, len(d.Columns))
	for _, col := range d.Columns {
		header = append(header, Th(Text(col)))
	}

	rows := make([]Node, 0, len(d.Rows))
	for i := range d.Rows {
		row := d.Rows[i]
		cells := make([]Node, 0, len(row)+1)
		cells = append(cells, data.Show(containsExpr(strings.Join(row, " "))))
		for _, cell := range row {
			cells = append(cells, Td(Text(cell)))
		}
		rows = append(rows, Tr(cells...))
	}

	return Div(
		Class(cardClass("table-wrap")),
		H2(Text(d.Selected)),
		P(Class(mutedClass()), Text(fmt.Sprintf("%d row(s)", d.RowCount))),
		Table(THead(Tr(Group(header))), TBody(Group(rows))),
	)
}

func addRowCard(d sheetsPageData) Node {
	fields := make([]Node, 0, 2*len(d.Columns)+1)
	fields = append(fields, d.CSRFField())
	// The cell_ prefix keeps a header named csrf_token from clashing with
	// the hidden token field.
	for _, col := range d.Columns {
		fields = append(fields,
			Label(Text(col)),
			Input(Name("cell_"+col), Class("form-control")),
		)
	}

	return Div(
		Class(cardClass()),
		H2(Text("Add Row")),
		Form(
			Method("post"),
			Action(sheetRowsURL(d.Selected)),
			Group(fields),
			Div(StyleAttr("margin-top: 12px"), Button(Type("submit"), Class(primaryButtonClass()), Text("Append row"))),
		),
	)
}

func rowAddedPage(sheet string, rowCount int) Node {
	return appPage("Row Appended", "sheets",
		Div(
			Class(cardClass()),
			P(statusLabel("Saved", "success"), Text(" Appended 1 row to sheet "+sheet+".")),
			P(Class(mutedClass()), Text(fmt.Sprintf("The sheet now has %d row(s). The table is not refreshed automatically.", rowCount))),
			P(A(Href(sheetURL(sheet)), Class(primaryButtonClass()), Text("View sheet"))),
		),
	)
}
