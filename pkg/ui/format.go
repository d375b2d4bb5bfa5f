// Package ui renders command results to the terminal. Every result can be
// shown three ways: pretty (styled tables for humans), plain (tab-separated
// lines for scripts), and json (machine-readable).
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type.
type Format int

const (
	// FormatAuto picks pretty or plain based on terminal capabilities.
	FormatAuto Format = iota
	// FormatPretty renders styled terminal output.
	FormatPretty
	// FormatPlain renders tab-separated text without styling.
	FormatPlain
	// FormatJSON renders machine-readable JSON.
	FormatJSON
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatPretty:
		return "pretty"
	case FormatPlain:
		return "plain"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a string into a Format value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "pretty":
		return FormatPretty, nil
	case "plain", "text":
		return FormatPlain, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format: %s (want pretty, plain, or json)", s)
	}
}

// DetectFormat determines the output format from the environment and the
// terminal the output is attached to.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatPlain
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatPlain
	}
	if termenv.ColorProfile() == termenv.Ascii {
		return FormatPlain
	}
	return FormatPretty
}
