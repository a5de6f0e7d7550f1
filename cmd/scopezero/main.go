// Command scopezero ingests supplier activity data and reports Scope 3 emissions.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/scopezero/scopezero/internal/cli"
	"github.com/scopezero/scopezero/pkg/version"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
