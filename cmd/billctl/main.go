package main

import (
	"os"

	"github.com/htn0810/Bill-Sharing/cmd/billctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
