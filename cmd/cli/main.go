// Package main is the entry point for the sheetdesk CLI binary.
package main

import (
	"os"

	cli "sheetdesk/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
