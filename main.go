package main

import (
	"os"

	"github.com/Lumos-Labs-HQ/knights/cmd"
)

func main() {
	cmd.RegisterBaseCommands()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
