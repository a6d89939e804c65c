package main

import (
	"os"

	"tableflip.dev/daily/pkg/commands"
)

func main() {
	// cobra has already printed the error.
	if err := commands.New().Execute(); err != nil {
		os.Exit(1)
	}
}
