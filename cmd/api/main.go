// @title           Restaurants & Ratings API
// @version         1.0
// @description     Read-only access to the restaurants and ratings collections.
// @BasePath        /
package main

import (
	"context"
	"os"

	"github.com/nadissa1508/CC3089-LAB-4/internal/cli"
	_ "github.com/nadissa1508/CC3089-LAB-4/internal/docs"
)

func main() {
	exitCode := 0
	defer func() { os.Exit(exitCode) }()

	exitCode = cli.NewApp().Run(context.Background(), append([]string{"serve"}, os.Args[1:]...))
}
