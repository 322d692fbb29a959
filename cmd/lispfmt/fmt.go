package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"lispfmt/internal/config"
	"lispfmt/internal/diag"
	"lispfmt/internal/diagfmt"
	"lispfmt/internal/driver"
	"lispfmt/internal/observ"
)

const stdinName = "<stdin>"

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [path...]",
	Short: "Format Lisp source files",
	Long: `Format rewrites files in place. Directories are searched recursively for the
configured extensions. With no paths, or with "-", stdin is formatted to stdout.`,
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|short|json); short prints one line per diagnostic")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Int("width", 0, "target line width (default: config or 100)")
	fmtCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	fmtCmd.Flags().Bool("cache", false, "skip files recorded as already formatted in the user cache")
	fmtCmd.Flags().Bool("clear-cache", false, "drop the user cache before formatting")
	fmtCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

type fmtFlags struct {
	check          bool
	outputFormat   string
	stdout         bool
	width          int
	jobs           int
	cache          bool
	clearCache     bool
	ui             switchMode
	quiet          bool
	timings        bool
	maxDiagnostics int
	configPath     string
}

func readFmtFlags(cmd *cobra.Command) (fmtFlags, error) {
	var f fmtFlags
	var err error
	flags := cmd.Flags()
	if f.check, err = flags.GetBool("check"); err != nil {
		return f, err
	}
	if f.outputFormat, err = flags.GetString("format"); err != nil {
		return f, err
	}
	if f.stdout, err = flags.GetBool("stdout"); err != nil {
		return f, err
	}
	if f.width, err = flags.GetInt("width"); err != nil {
		return f, err
	}
	if f.jobs, err = flags.GetInt("jobs"); err != nil {
		return f, err
	}
	if f.cache, err = flags.GetBool("cache"); err != nil {
		return f, err
	}
	if f.clearCache, err = flags.GetBool("clear-cache"); err != nil {
		return f, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return f, err
	}
	if f.ui, err = readUIMode(uiValue); err != nil {
		return f, err
	}

	root := cmd.Root().PersistentFlags()
	if f.quiet, err = root.GetBool("quiet"); err != nil {
		return f, err
	}
	if f.timings, err = root.GetBool("timings"); err != nil {
		return f, err
	}
	if f.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return f, err
	}
	if f.configPath, err = root.GetString("config"); err != nil {
		return f, err
	}

	if f.stdout && f.check {
		return f, errors.New("fmt: --stdout cannot be used with --check")
	}
	switch f.outputFormat {
	case "text", "short", "json":
	default:
		return f, fmt.Errorf("fmt: unsupported output format %q", f.outputFormat)
	}
	if f.stdout && f.outputFormat == "json" {
		return f, errors.New("fmt: --stdout is not supported with json output")
	}
	return f, nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	flags, err := readFmtFlags(cmd)
	if err != nil {
		return err
	}
	logger := logr.FromContextOrDiscard(cmd.Context())

	cfg, err := config.Resolve(flags.configPath, ".")
	if err != nil {
		return err
	}
	width, err := cfg.EffectiveWidth(flags.width)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		logger.V(1).Info("using config", "path", cfg.Path, "width", width)
	}

	opts := driver.FormatOptions{
		Check:          flags.check,
		Stdout:         flags.stdout,
		Width:          width,
		Config:         cfg,
		MaxDiagnostics: flags.maxDiagnostics,
		Jobs:           flags.jobs,
		Logger:         logger,
	}
	if flags.timings {
		opts.Timer = observ.NewTimer()
	}
	if flags.clearCache {
		if err := clearFormatCache(logger); err != nil {
			return err
		}
		if len(args) == 0 {
			return nil
		}
	}
	if flags.cache {
		cache, err := driver.OpenFormatCache(cacheApp)
		if err != nil {
			logger.Error(err, "format cache unavailable")
		} else {
			opts.Cache = cache
		}
	}

	var results []driver.FormatResult
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		res, err := formatStdin(cmd.InOrStdin(), opts)
		if err != nil {
			return err
		}
		results = []driver.FormatResult{res}
		if !flags.check {
			flags.stdout = true
		}
	} else {
		results, err = formatFiles(cmd, args, flags, opts)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	short := flags.outputFormat == "short"
	var hasErrors, hasChanges bool
	switch {
	case flags.outputFormat == "json":
		hasErrors, hasChanges = summarize(results)
		if err := renderFmtJSON(out, results, flags.check, opts.Timer); err != nil {
			return err
		}
	case flags.stdout:
		hasErrors = renderFmtStdout(out, errOut, results, short)
	default:
		hasErrors, hasChanges = renderFmtText(out, errOut, results, flags.check, flags.quiet, short)
	}
	if opts.Timer != nil && flags.outputFormat != "json" {
		fmt.Fprint(errOut, opts.Timer.Summary())
	}

	if hasErrors {
		return fmt.Errorf("%w: fmt: failed to format some files", errSilent)
	}
	if flags.check && hasChanges {
		return fmt.Errorf("%w: fmt: formatting changes required", errSilent)
	}
	return nil
}

func formatStdin(in io.Reader, opts driver.FormatOptions) (driver.FormatResult, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return driver.FormatResult{}, fmt.Errorf("fmt: read stdin: %w", err)
	}
	return driver.FormatSource(stdinName, data, opts), nil
}

func formatFiles(cmd *cobra.Command, args []string, flags fmtFlags, opts driver.FormatOptions) ([]driver.FormatResult, error) {
	if flags.stdout || flags.quiet || flags.outputFormat == "json" || !shouldUseTUI(flags.ui) {
		return driver.FormatPaths(cmd.Context(), args, opts)
	}
	files, err := driver.CollectFiles(cmd.Context(), args, opts.Config)
	if err != nil {
		return nil, err
	}
	if len(files) < 2 && flags.ui == modeAuto {
		return driver.FormatPaths(cmd.Context(), args, opts)
	}
	return runFormatWithUI(cmd.Context(), "lispfmt fmt", files, args, opts)
}

func summarize(results []driver.FormatResult) (hasErrors, hasChanges bool) {
	for _, res := range results {
		hasErrors = hasErrors || res.Err != nil
		hasChanges = hasChanges || res.Changed
	}
	return hasErrors, hasChanges
}

// cacheApp names the directory under the user cache dir.
const cacheApp = "lispfmt"

func clearFormatCache(logger logr.Logger) error {
	cache, err := driver.OpenFormatCache(cacheApp)
	if err != nil {
		return fmt.Errorf("fmt: open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("fmt: clear cache: %w", err)
	}
	logger.V(1).Info("format cache cleared")
	return nil
}

// reportDiagnostics prints the diagnostics of one result, pretty or one per
// line. It reports whether anything was printed.
func reportDiagnostics(errOut io.Writer, res driver.FormatResult, short bool) bool {
	if res.Bag == nil || res.Bag.Len() == 0 {
		return false
	}
	if short {
		fmt.Fprintln(errOut, diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, true))
		return true
	}
	diagfmt.Pretty(errOut, res.Bag, res.FileSet, diagfmt.PrettyOpts{
		Color:     useColor(),
		Context:   2,
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: true,
	})
	return true
}

func reportFailure(errOut io.Writer, res driver.FormatResult, short bool) {
	if !reportDiagnostics(errOut, res, short) {
		fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
	}
}

func renderFmtStdout(out, errOut io.Writer, results []driver.FormatResult, short bool) (hasErrors bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			reportFailure(errOut, res, short)
			continue
		}
		reportDiagnostics(errOut, res, short)
		_, _ = out.Write(res.Formatted)
	}
	return hasErrors
}

func renderFmtText(out, errOut io.Writer, results []driver.FormatResult, check, quiet, short bool) (hasErrors, hasChanges bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			reportFailure(errOut, res, short)
			continue
		}
		reportDiagnostics(errOut, res, short)
		if !res.Changed {
			continue
		}
		hasChanges = true
		if quiet {
			continue
		}
		if check {
			fmt.Fprintln(out, displayPath(res.Path))
		} else {
			fmt.Fprintf(out, "reformatted %s\n", displayPath(res.Path))
		}
	}
	return hasErrors, hasChanges
}

type fmtJSONResult struct {
	Path        string                   `json:"path"`
	Changed     bool                     `json:"changed"`
	Cached      bool                     `json:"cached,omitempty"`
	Error       string                   `json:"error,omitempty"`
	CheckRun    bool                     `json:"check"`
	Diagnostics []diagfmt.DiagnosticJSON `json:"diagnostics,omitempty"`
}

type fmtJSONPayload struct {
	Files   []fmtJSONResult `json:"files"`
	Timings *observ.Report  `json:"timings,omitempty"`
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool, timer *observ.Timer) error {
	payload := fmtJSONPayload{Files: make([]fmtJSONResult, 0, len(results))}
	for _, res := range results {
		jr := fmtJSONResult{Path: res.Path, Changed: res.Changed, Cached: res.Cached, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		if res.Bag != nil && res.Bag.Len() > 0 {
			jr.Diagnostics = diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         diagfmt.PathModeRelative,
				IncludeNotes:     true,
			}).Diagnostics
		}
		payload.Files = append(payload.Files, jr)
	}
	if timer != nil {
		report := timer.Report()
		payload.Timings = &report
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

// displayPath shortens paths under the working directory.
func displayPath(path string) string {
	if path == stdinName || !filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil && filepath.IsLocal(rel) {
		return rel
	}
	return path
}
