package main

import (
	"os"

	"github.com/govalues/fuzzy/cmd/fuzzypint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
