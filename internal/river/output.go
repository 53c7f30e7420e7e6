package river

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Window restricts the displayed cycle range of a plot. It does not change
// how cycles are folded.
type Window struct {
	Min int
	Max int
}

// ParseWindow reads a window written as "min,max" or "min:max".
func ParseWindow(s string) (*Window, error) {
	sep := ","
	if !strings.Contains(s, sep) {
		sep = ":"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWindow, s)
	}
	lo, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidWindow, s, err)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidWindow, s, err)
	}
	w := &Window{Min: lo, Max: hi}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Window) Validate() error {
	if w.Min >= w.Max {
		return fmt.Errorf("%w: min %d >= max %d", ErrInvalidWindow, w.Min, w.Max)
	}
	return nil
}

// Suffix is the file name suffix for the window, "_10_50" for (10, 50). A
// nil window has no suffix.
func (w *Window) Suffix() string {
	if w == nil {
		return ""
	}
	return fmt.Sprintf("_%d_%d", w.Min, w.Max)
}

// String formats the window the way ParseWindow reads it. A nil window is "".
func (w *Window) String() string {
	if w == nil {
		return ""
	}
	return fmt.Sprintf("%d,%d", w.Min, w.Max)
}

func (w *Window) Contains(cycle int) bool {
	return w == nil || (cycle >= w.Min && cycle <= w.Max)
}

// OutputPath builds {outdir}/{title}_river_{cmap}{window suffix}.png.
func OutputPath(outdir, title, cmap string, w *Window) (string, error) {
	if title == "" {
		return "", ErrMissingTitle
	}
	name := fmt.Sprintf("%s_river_%s%s.png", norm.NFC.String(title), cmap, w.Suffix())
	return filepath.Join(outdir, name), nil
}
