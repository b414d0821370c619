package main

import (
	"os"

	"github.com/arthur-debert/dotup/cmd/dotup/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
