// Package main is the entry point for the cin-rms control node.
package main

import (
	"fmt"
	"os"

	"github.com/simon-fu/cin-rms/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
