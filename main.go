package main

import (
	"context"
	"os"

	"github.com/nadissa1508/CC3089-LAB-4/internal/cli"
)

func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	exitCode = cli.NewApp().Run(context.Background(), os.Args[1:])
}
