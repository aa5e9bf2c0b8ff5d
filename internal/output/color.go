package output

import (
	"io"
	"os"
)

// ResolveColorMode determines whether styled output is enabled, combining
// the --color flag, the NO_COLOR convention, and TTY detection. The
// colorMode parameter accepts "never", "always", or "auto":
//   - "never":  always disable styling
//   - "always": always enable styling, even when piped
//   - "auto":   style only when writing to a terminal, unless NO_COLOR is set
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return isTTY
	}
}

// IsTTY checks if a writer is a terminal.
// Returns true only for os.File that is a terminal.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
