package main

import (
	"fmt"
	"io"
	"os"
)

// readSource loads the diagram text from path, or from stdin when path is
// "-". It also returns a display name to attribute diagnostics to.
func readSource(path string) (text string, displayName string, err error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), "stdin", nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(b), path, nil
}

// resolveColor turns the --color flag (auto|on|off) into a concrete
// decision for the given output stream.
func resolveColor(flag string, f *os.File) bool {
	switch flag {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
