// Package main is the entry point for the geoaccess CLI binary.
package main

import (
	"os"

	"geoaccess/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
