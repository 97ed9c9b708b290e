package cmd

import (
	"github.com/spf13/cobra"

	"linefile/internal/parser"
)

func newApplyCmd(a *app) *cobra.Command {
	var (
		jobs   int
		dryRun bool
	)
	applyCmd := &cobra.Command{
		Use:   "apply PLAN",
		Short: "Apply a multi-file plan",
		Long: `apply reads a plan (a .json or .toml document listing files and their changes)
and edits the files concurrently. Every file is previewed first; nothing is
written unless every changeset applies.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := parser.ParsePlanFile(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("jobs") {
				jobs = a.cfg.Write.Jobs
			}
			ed := a.newEditor(jobs)

			if dryRun {
				results, err := ed.PreviewPlan(cmd.Context(), plan)
				if err != nil {
					return err
				}
				return report(cmd.OutOrStdout(), "would write", results...)
			}
			results, err := ed.EditPlan(cmd.Context(), plan)
			if err != nil {
				return err
			}
			return report(cmd.OutOrStdout(), "wrote", results...)
		},
	}
	applyCmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "files edited concurrently (default from config)")
	applyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")
	return applyCmd
}
