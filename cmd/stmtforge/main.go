package main

import (
	"os"

	"stmtforge/internal/cli"
)

func main() {
	os.Args = cli.RewriteDirectLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
