package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sheetdesk/pkg/cli/client"
)

func newRowsCmd(c *client.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Append rows to a sheet",
	}

	cmd.AddCommand(newRowsAddCmd(c))

	return cmd
}

func newRowsAddCmd(c *client.Client) *cobra.Command {
	var (
		values    []string
		jsonInput string
	)

	cmd := &cobra.Command{
		Use:   "add <sheet>",
		Short: "Append one row to a sheet",
		Long: `Append one row to the end of a sheet and write the workbook back to disk.
Cells are given as --value column=text pairs; columns not mentioned are
left empty.`,
		Example: `  # Append a row to the Data sheet
  sheetdesk rows add Data --value Name=Ada --value Age=36

  # Raw JSON request body
  sheetdesk rows add Data --json '{"values":{"Name":"Ada"}}'

  # JSON body from a file
  sheetdesk rows add Data --json @row.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var body interface{}
			if jsonInput != "" {
				raw, err := readJSONInput(jsonInput)
				if err != nil {
					return err
				}
				body = raw
			} else {
				cells := make(map[string]string, len(values))
				for _, pair := range values {
					col, text, ok := strings.Cut(pair, "=")
					if !ok {
						return fmt.Errorf("invalid --value %q: expected column=text", pair)
					}
					cells[col] = text
				}
				body = map[string]interface{}{"values": cells}
			}

			resp, err := c.Do(http.MethodPost, "/sheets/"+url.PathEscape(args[0])+"/rows", nil, body)
			if err != nil {
				return err
			}
			if err := client.CheckError(resp); err != nil {
				return err
			}
			respBody, err := client.ReadBody(resp)
			if err != nil {
				return fmt.Errorf("read response: %w", err)
			}

			var result struct {
				Sheet    string `json:"sheet"`
				RowCount int    `json:"row_count"`
			}
			if err := json.Unmarshal(respBody, &result); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if isQuiet(cmd) {
				_, _ = fmt.Fprintln(os.Stdout, result.RowCount)
				return nil
			}
			if getOutputFormat(cmd) == "json" {
				var pretty interface{}
				_ = json.Unmarshal(respBody, &pretty)
				return client.PrintJSON(os.Stdout, pretty)
			}
			_, _ = fmt.Fprintf(os.Stdout, "Appended 1 row to sheet %q (%d rows)\n", result.Sheet, result.RowCount)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&values, "value", nil, "Cell value as column=text (repeatable)")
	cmd.Flags().StringVar(&jsonInput, "json", "", "Raw JSON request body (string or @file)")

	return cmd
}
