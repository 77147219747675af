// Command lint-api checks an OpenAPI 3.x spec for sheetdesk API convention
// violations.
//
// Usage:
//
//	lint-api [flags] <openapi.yaml> [<openapi.yaml>...]
//
// Flags:
//
//	-severity string
//	      minimum severity to report: error, warning, or info (default "info")
//	-config string
//	      path to a .apilint.yaml rule config
//
// Exit codes: 0 when no error-level violations are found, 1 when at least one
// file has error-level violations, 2 on usage or I/O problems.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"sheetdesk/pkg/apilint"
)

func main() {
	severity := flag.String("severity", "info", "minimum severity to report: error, warning, or info")
	configPath := flag.String("config", "", "path to a .apilint.yaml rule config")
	flag.Parse()

	minSev := apilint.Severity(*severity)
	switch minSev {
	case apilint.SeverityError, apilint.SeverityWarning, apilint.SeverityInfo:
	default:
		fmt.Fprintf(os.Stderr, "error: unknown severity %q\n", *severity)
		os.Exit(2)
	}

	var cfg *apilint.Config
	if *configPath != "" {
		c, err := apilint.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}
		cfg = c
	}

	files := flag.Args()
	if len(files) < 1 {
		fmt.Fprintln(os.Stderr, "usage: lint-api [flags] <openapi.yaml> [<openapi.yaml>...]")
		os.Exit(2)
	}

	// Lint files in parallel; results are printed in argument order below so
	// the output stays stable.
	var (
		mu     sync.Mutex
		byFile = make(map[string][]apilint.Violation, len(files))
	)
	var g errgroup.Group
	for _, path := range files {
		g.Go(func() error {
			l, err := apilint.New(path)
			if err != nil {
				return err
			}
			vs := apilint.Filter(l.RunWithConfig(cfg), minSev)
			mu.Lock()
			byFile[path] = vs
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	total := 0
	failed := false
	for _, path := range files {
		vs := byFile[path]
		if len(vs) == 0 {
			fmt.Printf("%s: ok (0 violations)\n", path)
			continue
		}
		for _, v := range vs {
			fmt.Println(v)
		}
		total += len(vs)
		if apilint.HasErrors(vs) {
			failed = true
		}
	}
	if total > 0 {
		fmt.Printf("\n%d violation(s) found\n", total)
	}
	if failed {
		os.Exit(1)
	}
}
