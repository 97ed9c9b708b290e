package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"linefile/internal/core"
	"linefile/internal/parser"
)

func newEditCmd(a *app) *cobra.Command {
	var dryRun bool
	editCmd := &cobra.Command{
		Use:   "edit FILE CHANGES",
		Short: "Apply a changeset document to one file",
		Long: `edit applies the changes listed in CHANGES (a .json or .toml document) to FILE.
Every index refers to FILE as it is before the edit.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := parser.ParseChangesetFile(args[1])
			if err != nil {
				return err
			}
			ed := a.newEditor(1)
			out := cmd.OutOrStdout()

			if dryRun {
				res, err := ed.Preview(cmd.Context(), args[0], cs)
				if err != nil {
					return err
				}
				_, err = res.After.WriteTo(out)
				return err
			}
			res, err := ed.Edit(cmd.Context(), args[0], cs)
			if err != nil {
				return err
			}
			return report(out, "wrote", res)
		},
	}
	editCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the result instead of writing it")
	return editCmd
}

// report prints one line per result: verb, path and what changed. A result
// whose text equals its pre-image is reported as unchanged.
func report(w io.Writer, verb string, results ...*core.Result) error {
	for _, res := range results {
		v := color.GreenString(verb)
		if res.After.Equal(res.Before) {
			v = color.YellowString("unchanged")
		}
		if _, err := fmt.Fprintf(w, "%s %s: %s\n", v, res.Path, res.Summary); err != nil {
			return err
		}
	}
	return nil
}
