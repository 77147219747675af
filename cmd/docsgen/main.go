// Command docsgen renders the sheetdesk API reference from the OpenAPI spec.
package main

import (
	"flag"
	"fmt"
	"os"

	"sheetdesk/internal/docsgen"
)

func main() {
	specPath := flag.String("spec", "internal/api/openapi.yaml", "path to the OpenAPI spec")
	outPath := flag.String("out", "docs/api.md", "output markdown file")
	flag.Parse()

	if err := docsgen.Generate(*specPath, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *outPath)
}
