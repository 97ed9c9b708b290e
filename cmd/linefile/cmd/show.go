package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"linefile/internal/file"
	"linefile/internal/linebuf"
)

var gutterColor = color.New(color.FgHiBlack)

func newShowCmd(a *app) *cobra.Command {
	var numbers bool
	showCmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print a file as the line buffer sees it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := file.NewOSStore(a.cfg.FileMode()).Read(args[0])
			if err != nil {
				return err
			}
			buf := linebuf.Parse(text)
			out := cmd.OutOrStdout()

			if !numbers {
				_, err := buf.WriteTo(out)
				return err
			}
			// Numbers are the zero-based indexes changesets address.
			width := len(fmt.Sprint(buf.Len() - 1))
			for i, line := range buf.Lines() {
				if _, err := fmt.Fprintf(out, "%s %s\n", gutterColor.Sprintf("%*d", width, i), line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	showCmd.Flags().BoolVarP(&numbers, "numbers", "n", false, "prefix every line with its index")
	return showCmd
}
