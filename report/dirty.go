package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/signadot/track-format/go-track/track"
)

// WriteDirty lists a tracker's dirty paths on w, one per line in
// insertion order, colored when w is a terminal.
func WriteDirty(w io.Writer, tr *track.Tracker) error {
	paths := tr.DirtyPaths()
	if len(paths) == 0 {
		_, err := fmt.Fprintln(w, "clean")
		return err
	}
	colored := wantColor(w)
	if _, err := fmt.Fprintf(w, "%d dirty paths:\n", len(paths)); err != nil {
		return err
	}
	for _, p := range paths {
		if colored {
			p = color.YellowString("%s", p)
		}
		if _, err := fmt.Fprintf(w, "  %s\n", p); err != nil {
			return err
		}
	}
	return nil
}
