package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/eringen/folio/validate"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check site.json and every profile document",
		Long: `Check public/data/site.json and public/data/profiles/*.json, relative to
the working directory, for missing required fields and unknown enum values.
Exits with status 1 when anything is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(".", cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func runValidate(root string, out, errOut io.Writer) error {
	r := validate.Run(root)
	r.Write(out, errOut)
	if !r.OK() {
		return errValidationFailed
	}
	return nil
}
