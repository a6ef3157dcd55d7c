package main

import (
	"os"

	"github.com/moneymap-dev/moneymap/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
