package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lispfmt/internal/diagfmt"
	"lispfmt/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file|->",
	Short: "Parse a Lisp source file and print its syntax tree",
	Long: `Parse prints the lossless syntax tree of a file. With --format doc it prints
the layout document the formatter builds from that tree.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|doc)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	var result *driver.ParseResult
	if filePath == "-" {
		data, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("read stdin: %w", readErr)
		}
		result = driver.ParseSource(stdinName, data, maxDiagnostics)
	} else {
		result, err = driver.Parse(filePath, maxDiagnostics)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
	}

	if result.Bag.Len() > 0 {
		result.Bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(),
			Context:   2,
			ShowNotes: true,
		})
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTreePretty(out, result.Tree)
	case "json":
		err = diagfmt.FormatTreeJSON(out, result.Tree)
	case "doc":
		d, ok := result.Document()
		if !ok {
			return errSilent
		}
		_, err = fmt.Fprintln(out, d.String())
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errSilent
	}
	return nil
}
