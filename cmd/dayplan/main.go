package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/dayplan/internal/cli"
	"github.com/alexanderramin/dayplan/internal/cli/formatter"
)

func main() {
	if err := cli.NewRootCmd(cli.NewApp()).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, formatter.Error(err))
		os.Exit(1)
	}
}
