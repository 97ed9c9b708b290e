package cmd

import (
	"github.com/spf13/cobra"

	"linefile/internal/logger"
	"linefile/internal/parser"
	"linefile/internal/tui"
)

func newPreviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "preview FILE CHANGES",
		Short: "Review an edit interactively before writing it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := parser.ParseChangesetFile(args[1])
			if err != nil {
				return err
			}
			written, err := tui.Run(cmd.Context(), a.newEditor(1), args[0], cs)
			if err != nil {
				return err
			}
			if !written {
				logger.Infof("preview of %s canceled", args[0])
			}
			return nil
		},
	}
}
