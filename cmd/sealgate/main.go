package main

import (
	"os"

	"sealgate/cmd/sealgate/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
