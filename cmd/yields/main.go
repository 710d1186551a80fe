package main

import (
	"os"

	"github.com/jmtruffa/financial/cmd/yields/commands"
)

func main() {
	root := commands.NewRootCmd()
	root.AddCommand(
		commands.NewServeCmd(),
		commands.NewSeedCmd(),
		commands.NewIRRCmd(),
		commands.NewXIRRCmd(),
	)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
