package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lispfmt/internal/prof"
)

// profiling is the session started by setupGlobals; main stops it after the
// command returns.
var profiling *prof.Session

// readProfilePaths collects the persistent profiling flags.
func readProfilePaths(cmd *cobra.Command) (prof.Paths, error) {
	flags := cmd.Root().PersistentFlags()
	var (
		paths prof.Paths
		err   error
	)
	if paths.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return paths, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if paths.Mem, err = flags.GetString("mem-profile"); err != nil {
		return paths, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if paths.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return paths, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	return paths, nil
}

func startProfiling(cmd *cobra.Command) error {
	paths, err := readProfilePaths(cmd)
	if err != nil {
		return err
	}
	if paths.Empty() {
		return nil
	}
	s, err := prof.Start(paths)
	if err != nil {
		return err
	}
	profiling = s
	return nil
}

func stopProfiling() error {
	s := profiling
	profiling = nil
	return s.Stop()
}
