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

func newActivityCmd(c *client.Client) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent workbook activity",
		Long:  "Show the most recent sheet views and row appends, newest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := url.Values{}
			if cmd.Flags().Changed("limit") {
				q.Set("limit", strconv.Itoa(limit))
			}

			resp, err := c.Do(http.MethodGet, "/activity", q, nil)
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

			var data map[string]interface{}
			if err := json.Unmarshal(body, &data); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}

			if isQuiet(cmd) {
				for _, row := range client.ExtractRows(data, []string{"id"}) {
					_, _ = fmt.Fprintln(os.Stdout, row[0])
				}
				return nil
			}

			columns := []string{"created_at", "action", "sheet", "detail", "row_count"}
			rows := client.ExtractRows(data, columns)
			client.PrintTable(os.Stdout, columns, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum entries to return (server default 50)")

	return cmd
}
