package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"sheetdesk/pkg/cli/client"
)

func newWorkbookCmd(c *client.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "workbook",
		Short: "Show the workbook summary",
		Example: `  # Path and sheet names of the served workbook
  sheetdesk workbook

  # Machine-readable
  sheetdesk workbook --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := c.Do(http.MethodGet, "/workbook", nil, nil)
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

			var detail map[string]interface{}
			if err := json.Unmarshal(body, &detail); err != nil {
				return fmt.Errorf("parse response: %w", err)
			}
			client.PrintDetail(os.Stdout, detail)
			return nil
		},
	}
}
