// Package main provides the CLI entrypoint for mapper-generator.
//
// mapper-generator reads a YAML definition of mapped types and generates
// streaming JSON mappers that run on the jsonmap runtime.
package main

import (
	_ "go.uber.org/automaxprocs"

	"mapper-generator/internal/cli"
)

func main() {
	cli.Execute()
}
