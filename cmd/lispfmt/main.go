package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lispfmt/internal/version"
)

// errSilent marks failures that were already reported to the user.
var errSilent = errors.New("already reported")

var rootCmd = &cobra.Command{
	Use:               "lispfmt",
	Short:             "Formatter for Fennel-style Lisp sources",
	Long:              `lispfmt re-lays out Lisp sources within a column budget while keeping every comment`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupGlobals,
}

// main registers subcommands and persistent flags, then executes the root
// command. Any error exits with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "path to lispfmt.toml (default: search upward from the working directory)")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write runtime trace to file")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if profErr := stopProfiling(); profErr != nil {
		fmt.Fprintf(os.Stderr, "lispfmt: %v\n", profErr)
	}
	if err != nil {
		if !errors.Is(err, errSilent) {
			fmt.Fprintf(os.Stderr, "lispfmt: %v\n", err)
		}
		os.Exit(1)
	}
}

// setupGlobals applies --color, starts requested profilers and installs the
// logger into the command context.
func setupGlobals(cmd *cobra.Command, _ []string) error {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor, err := readColorMode(colorFlag, isTerminal(os.Stderr))
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	verbosity, err := cmd.Root().PersistentFlags().GetCount("verbose")
	if err != nil {
		return err
	}
	logger, err := newLogger(verbosity)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	cmd.SetContext(logr.NewContext(cmd.Context(), logger))
	return startProfiling(cmd)
}

// useColor reports whether diagnostics should be colored.
func useColor() bool { return !color.NoColor }

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
