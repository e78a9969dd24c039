// Command folio serves, validates, and scaffolds folio profile sites.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// errValidationFailed signals a failed validation whose report was already
// printed.
var errValidationFailed = errors.New("validation failed")

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "folio",
		Short: "folio - personal profile sites built with Go, Echo, and templ",
		Long: `folio renders a family of personal profile pages from JSON documents.

Profiles live in public/data/profiles/<slug>.json and are listed in
public/data/site.json. Run 'folio validate' before deploying.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(
		newServeCmd(),
		newValidateCmd(),
		newWatchCmd(),
		newNewCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the folio version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "folio %s\n", version)
		},
	}
}
