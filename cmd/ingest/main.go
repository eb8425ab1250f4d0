package main

import (
	"context"
	"os"

	"github.com/nadissa1508/CC3089-LAB-4/internal/cli"
)

// One-shot load; same as `lab4 load`.
func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	exitCode = cli.NewApp().Run(context.Background(), append([]string{"load"}, os.Args[1:]...))
}
