package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"lispfmt/internal/config"
	"lispfmt/internal/diag"
	"lispfmt/internal/format"
	"lispfmt/internal/observ"
	"lispfmt/internal/source"
	"lispfmt/internal/version"
)

// ErrNoFiles is returned when the given paths contain no source files.
var ErrNoFiles = errors.New("format: no source files found")

// FormatOptions configures code formatting.
type FormatOptions struct {
	Check          bool
	Stdout         bool
	Width          int
	Config         config.Config
	MaxDiagnostics int
	Jobs           int
	Cache          *FormatCache
	Progress       ProgressSink
	Timer          *observ.Timer
	Logger         logr.Logger
}

// FormatResult captures the result of formatting a single file. FileSet and
// Bag hold the file's diagnostics, if any.
type FormatResult struct {
	Path      string
	Changed   bool
	Cached    bool
	Err       error
	Formatted []byte
	FileSet   *source.FileSet
	Bag       *diag.Bag
}

// FormatPaths formats provided files or directories (recursively collecting
// files with the configured extensions) using up to opts.Jobs workers.
// When opts.Check is true, files are not modified; Changed indicates whether
// formatting would update the file contents. When opts.Stdout is true,
// formatted content is returned in the results without touching files on
// disk. Results are in path order.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := CollectFiles(ctx, paths, opts.Config)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	opts.Logger.V(1).Info("formatting files", "count", len(files), "jobs", jobs, "width", opts.Width)

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatPath(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatPath(path string, opts FormatOptions) FormatResult {
	started := time.Now()
	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})

	// #nosec G304 -- path comes from the command line or a directory walk
	raw, err := os.ReadFile(path)
	if err != nil {
		res := ioFailure(path, diag.IOLoadFileError, err, opts)
		finish(opts, res, started)
		return res
	}

	key := NewCacheKey(raw, opts.Width)
	if opts.Cache != nil {
		var entry CacheEntry
		hit, cacheErr := opts.Cache.Get(key, &entry)
		if cacheErr != nil {
			opts.Logger.V(1).Info("cache read failed", "path", path, "error", cacheErr.Error())
		}
		if hit && entry.Size == len(raw) {
			res := FormatResult{Path: path, Cached: true}
			if opts.Stdout {
				res.Formatted = raw
			}
			finish(opts, res, started)
			return res
		}
	}

	emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusWorking})
	res := formatBytes(path, raw, opts)
	if res.Err != nil {
		finish(opts, res, started)
		return res
	}

	// файлы с предупреждениями не кешируем, иначе предупреждение пропадёт
	if !res.Changed && res.Bag.Len() == 0 && opts.Cache != nil {
		entry := CacheEntry{Version: version.Version, Width: opts.Width, Size: len(raw), CheckedAt: time.Now()}
		if err := opts.Cache.Put(key, &entry); err != nil {
			opts.Logger.V(1).Info("cache write failed", "path", path, "error", err.Error())
		}
	}

	if res.Changed && !opts.Check && !opts.Stdout {
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, res.Formatted, mode.Perm()); err != nil {
			failed := ioFailure(path, diag.IOWriteError, err, opts)
			finish(opts, failed, started)
			return failed
		}
		res.Formatted = nil
	}
	finish(opts, res, started)
	return res
}

// FormatSource formats content that does not come from disk (stdin). The
// result always carries the formatted bytes.
func FormatSource(name string, raw []byte, opts FormatOptions) FormatResult {
	opts.Stdout = true
	return formatBytes(name, raw, opts)
}

func formatBytes(path string, raw []byte, opts FormatOptions) FormatResult {
	fs := source.NewFileSet()
	bag := diag.NewBag(maxDiagnosticsOrDefault(opts.MaxDiagnostics))
	res := FormatResult{Path: path, FileSet: fs, Bag: bag}

	content, flags, err := source.Normalize(raw)
	if err != nil {
		id := fs.AddVirtual(path, nil)
		diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError, source.Span{File: id}, err.Error()).Emit()
		res.Err = err
		return res
	}
	sf := fs.Get(fs.Add(path, content, flags))

	maxErrors := uint(bag.Cap())
	out, err := format.FormatFile(sf, bag, format.Options{Width: opts.Width, MaxErrors: maxErrors, Timer: opts.Timer})
	bag.Sort()
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res
	}

	res.Changed = !bytes.Equal(raw, []byte(out))
	if opts.Check && !opts.Stdout {
		return res
	}
	res.Formatted = []byte(out)
	return res
}

func ioFailure(path string, code diag.Code, err error, opts FormatOptions) FormatResult {
	fs := source.NewFileSet()
	bag := diag.NewBag(maxDiagnosticsOrDefault(opts.MaxDiagnostics))
	id := fs.AddVirtual(path, nil)
	diag.ReportError(diag.BagReporter{Bag: bag}, code, source.Span{File: id}, err.Error()).Emit()
	opts.Logger.Error(err, "file operation failed", "path", path, "code", code.ID())
	return FormatResult{Path: path, Err: err, FileSet: fs, Bag: bag}
}

func finish(opts FormatOptions, res FormatResult, started time.Time) {
	evt := Event{File: res.Path, Status: StatusDone, Changed: res.Changed, Err: res.Err, Elapsed: time.Since(started)}
	if res.Err != nil {
		evt.Status = StatusError
	}
	emit(opts.Progress, evt)
	opts.Logger.V(2).Info("formatted", "path", res.Path, "changed", res.Changed, "cached", res.Cached, "elapsed", evt.Elapsed)
}

func maxDiagnosticsOrDefault(n int) int {
	if n <= 0 {
		return math.MaxUint16
	}
	return n
}
