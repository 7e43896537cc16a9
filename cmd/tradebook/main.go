// Package main is the entry point of the tradebook client.
package main

import (
	"os"

	"github.com/aristath/tradebook/cmd/tradebook/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
