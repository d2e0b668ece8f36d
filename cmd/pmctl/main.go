package main

import (
	"fmt"
	"os"

	"github.com/hbjs97/pmctl/internal/cli"
)

func main() {
	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "오류:", cli.MaskTokens(err.Error()))
		os.Exit(int(cli.MapExitCode(err)))
	}
}
