// ABOUTME: Command-line entry point for formatting, diffing, converting and validating files
// ABOUTME: Reads files or stdin and writes results to stdout, errors to stderr

package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
