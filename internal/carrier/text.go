package carrier

import (
	"io"
	"os"

	"github.com/samber/oops"
	"golang.org/x/term"
)

// isTerminal is swapped in tests.
var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ReadText resolves a text carrier. A non-empty path wins; an argument of "-"
// (or none) reads stdin as long as stdin is not an interactive terminal;
// anything else is the text itself.
func ReadText(arg, path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", oops.With("path", path).Wrapf(err, "error reading file")
		}
		return string(data), nil
	}

	if arg == "-" || arg == "" {
		if isTerminal(os.Stdin) {
			return "", oops.Errorf("%w: pass the text as an argument, a file or on stdin", ErrNoText)
		}
		return readAll(os.Stdin)
	}
	return arg, nil
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", oops.Wrapf(err, "error reading stdin")
	}
	return string(data), nil
}
