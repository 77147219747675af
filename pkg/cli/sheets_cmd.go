package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"sheetdesk/pkg/cli/client"
)

func newSheetsCmd(c *client.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Inspect workbook sheets",
	}

	cmd.AddCommand(newSheetsListCmd(c))
	cmd.AddCommand(newSheetsGetCmd(c))

	return cmd
}

func newSheetsListCmd(c *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the sheets in the workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := c.Do(http.MethodGet, "/sheets", nil, nil)
			if err != nil {
				return err
			}
			if err := client.CheckError(resp); err != nil {
				return err
			}
			body, err := client.ReadBody(resp)
			if err != nil {
				return fmt.Errorf("read response: %w", err)
			}

			var listing struct {
				Sheets []struct {
					Name     string `json:"name"`
					Position int    `json:"position"`
				} `json:"sheets"`
			}
			if err := json.Unmarshal(body, &listing); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if isQuiet(cmd) {
				for _, s := range listing.Sheets {
					_, _ = fmt.Fprintln(os.Stdout, s.Name)
				}
				return nil
			}

			if getOutputFormat(cmd) == "json" {
				var pretty interface{}
				_ = json.Unmarshal(body, &pretty)
				return client.PrintJSON(os.Stdout, pretty)
			}

			columns := []string{"name", "position"}
			rows := make([][]string, len(listing.Sheets))
			for i, s := range listing.Sheets {
				rows[i] = []string{s.Name, strconv.Itoa(s.Position)}
			}
			client.PrintTable(os.Stdout, columns, rows)
			return nil
		},
	}
}

func newSheetsGetCmd(c *client.Client) *cobra.Command {
	var maxCellWidth int

	cmd := &cobra.Command{
		Use:   "get <sheet>",
		Short: "Print a sheet as a table",
		Long: `Print a sheet as a table. The first workbook row supplies the column
headers; empty and repeated headers are disambiguated the same way the
server does it everywhere else.`,
		Example: `  # Dump the Data sheet
  sheetdesk sheets get Data

  # Full cell contents regardless of terminal width
  sheetdesk sheets get Data --max-cell-width -1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.Do(http.MethodGet, "/sheets/"+url.PathEscape(args[0]), nil, nil)
			if err != nil {
				return err
			}
			if err := client.CheckError(resp); err != nil {
				return err
			}
			body, err := client.ReadBody(resp)
			if err != nil {
				return fmt.Errorf("read response: %w", err)
			}

			if getOutputFormat(cmd) == "json" {
				var pretty interface{}
				_ = json.Unmarshal(body, &pretty)
				return client.PrintJSON(os.Stdout, pretty)
			}

			var sheet struct {
				Name     string     `json:"name"`
				Columns  []string   `json:"columns"`
				Rows     [][]string `json:"rows"`
				RowCount int        `json:"row_count"`
			}
			if err := json.Unmarshal(body, &sheet); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			width := maxCellWidth
			if width == 0 {
				width = displayCellWidth(len(sheet.Columns))
			}

			columns := make([]string, len(sheet.Columns))
			for i, col := range sheet.Columns {
				columns[i] = client.Truncate(col, width)
			}
			rows := make([][]string, len(sheet.Rows))
			for i, row := range sheet.Rows {
				cells := make([]string, len(row))
				for j, cell := range row {
					cells[j] = client.Truncate(cell, width)
				}
				rows[i] = cells
			}

			client.PrintTable(os.Stdout, columns, rows)
			_, _ = fmt.Fprintf(os.Stdout, "\n%d row(s)\n", sheet.RowCount)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxCellWidth, "max-cell-width", 0,
		"Truncate cells wider than this (0 fits the terminal, negative disables)")

	return cmd
}

// displayCellWidth derives a per-cell display cap from the terminal width so
// wide sheets stay readable. Output that is not a terminal is never capped.
func displayCellWidth(columns int) int {
	if columns == 0 {
		return 0
	}
	tw := client.TerminalWidth(int(os.Stdout.Fd()))
	if tw == 0 {
		return 0
	}
	width := (tw - 2*(columns-1)) / columns
	if width < 8 {
		width = 8
	}
	return width
}
