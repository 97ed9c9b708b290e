package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"linefile/internal/config"
	"linefile/internal/core"
	"linefile/internal/file"
	"linefile/internal/logger"
)

// app carries what the persistent flags and the config file resolve to.
type app struct {
	configPath string
	logLevel   string
	logFile    string

	cfg       *config.Config
	logCloser io.Closer
}

// newRootCmd builds the command tree. Each call returns fresh flag state;
// run it through app.execute so the log output is always closed.
func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "linefile",
		Short: "Apply line-addressed changesets to text files",
		Long: `linefile reads a text file as a sequence of lines, applies a changeset of
inserts, deletes and replaces addressed by the original line indexes,
and writes the result back. Either every change applies or nothing is written.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", `log destination ("-" for stderr)`)

	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newEditCmd(a))
	rootCmd.AddCommand(newApplyCmd(a))
	rootCmd.AddCommand(newPreviewCmd(a))
	return rootCmd, a
}

// execute runs root and closes the log output whether or not the command failed.
func (a *app) execute(ctx context.Context, root *cobra.Command) error {
	defer a.teardown()
	return root.ExecuteContext(ctx)
}

// setup loads the config, lets flags override it and starts the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logger.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Logger.LogFilePath = a.logFile
	}

	w, closer, err := logger.OpenOutput(cfg.Logger.LogFilePath)
	if err != nil {
		return err
	}
	logger.Init(logger.ParseLevel(cfg.Logger.LogLevel), w)
	a.logCloser = closer
	for _, key := range cfg.Undecoded {
		logger.Warnf("unknown key %q in %s", key, path)
	}

	color.NoColor = !useColor(cfg.Output.Color, cmd.OutOrStdout())
	a.cfg = cfg
	logger.Debugf("config loaded from %s", path)
	return nil
}

func (a *app) teardown() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
		a.logCloser = nil
	}
	logger.Init(logger.ParseLevel(config.DefaultLogLevel), nil)
}

// newEditor wires an Editor to the real file system.
func (a *app) newEditor(jobs int) *core.Editor {
	return core.NewEditor(
		file.NewOSStore(a.cfg.FileMode()),
		core.WithJobs(jobs),
		core.WithObserver(logEvent),
	)
}

func logEvent(ev core.Event) {
	switch ev.Kind {
	case core.EventRead:
		logger.Debugf("read %s (%d lines)", ev.Path, ev.Lines)
	case core.EventApplied:
		logger.Debugf("applied changes to %s: %s", ev.Path, ev.Summary)
	case core.EventWritten:
		logger.Infof("wrote %s in %s: %s", ev.Path, ev.Elapsed, ev.Summary)
	case core.EventFailed:
		logger.Errorf("%s: %v", ev.Path, ev.Err)
	}
}

// useColor resolves an output color mode; "auto" colors terminals only.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). Errors are printed once and exit with status 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root, a := newRootCmd()
	if err := a.execute(ctx, root); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
