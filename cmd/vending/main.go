package main

import (
	"context"
	"os"

	"github.com/jhoicas/expendedora/cmd/vending/commands"
)

func main() {
	if err := commands.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
