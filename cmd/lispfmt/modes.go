package main

import (
	"fmt"
	"os"
	"strings"
)

// switchMode is the auto|on|off value shared by --color and --ui. Auto
// defers to whether the relevant stream is a terminal.
type switchMode string

const (
	modeAuto switchMode = "auto"
	modeOn   switchMode = "on"
	modeOff  switchMode = "off"
)

func parseSwitch(flag, value string) (switchMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on":
		return modeOn, nil
	case "off":
		return modeOff, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

func (m switchMode) enabled(tty bool) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	default:
		return tty
	}
}

// readColorMode resolves --color against stderr, where diagnostics go.
func readColorMode(value string, tty bool) (bool, error) {
	m, err := parseSwitch("color", value)
	if err != nil {
		return false, err
	}
	return m.enabled(tty), nil
}

func readUIMode(value string) (switchMode, error) {
	return parseSwitch("ui", value)
}

// shouldUseTUI resolves --ui against stdout, where the progress view draws.
func shouldUseTUI(mode switchMode) bool {
	return mode.enabled(isTerminal(os.Stdout))
}
