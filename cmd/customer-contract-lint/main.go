package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-customerform/pkg/openapi"
)

const embeddedName = "(embedded)"

type violation struct {
	file string
	openapi.Violation
}

func main() {
	validate := flag.Bool("validate", true, "run OpenAPI document validation before linting")
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint customer service contracts for missing routes, form fields, and unsupported x-formgen extensions.\nWith no paths the embedded contract is checked.\n\n"); err != nil {
			panic(err)
		}
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx := context.Background()
	paths := flag.Args()

	var violations []violation
	if len(paths) == 0 {
		contract, err := openapi.Parse(ctx, openapi.DefaultContract(), *validate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", embeddedName, err)
			os.Exit(1)
		}
		violations = append(violations, collect(embeddedName, contract)...)
	}
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		contract, err := openapi.Parse(ctx, raw, *validate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, collect(path, contract)...)
	}

	if len(violations) > 0 {
		sort.SliceStable(violations, func(i, j int) bool {
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s\n", v.file, v.Violation)
		}
		os.Exit(1)
	}
}

func collect(file string, contract *openapi.Contract) []violation {
	found := contract.Lint()
	out := make([]violation, 0, len(found))
	for _, v := range found {
		out = append(out, violation{file: file, Violation: v})
	}
	return out
}
