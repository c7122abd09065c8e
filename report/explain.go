package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Explain renders the textual difference between two snapshots of a
// canonical structure, typically a baseline from track.Snapshot and the
// structure's current state. Inserted text is wrapped in {+...+},
// deleted text in [-...-].
func Explain(before, after any) (string, error) {
	diffs, err := diff(before, after)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffInsert:
			sb.WriteString("{+")
			sb.WriteString(d.Text)
			sb.WriteString("+}")
		case diffpatch.DiffDelete:
			sb.WriteString("[-")
			sb.WriteString(d.Text)
			sb.WriteString("-]")
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String(), nil
}

// WriteExplain writes the same difference to w, in color when w is a
// terminal.
func WriteExplain(w io.Writer, before, after any) error {
	if !wantColor(w) {
		s, err := Explain(before, after)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s)
		return err
	}
	diffs, err := diff(before, after)
	if err != nil {
		return err
	}
	for _, d := range diffs {
		var s string
		switch d.Type {
		case diffpatch.DiffInsert:
			s = color.GreenString("%s", d.Text)
		case diffpatch.DiffDelete:
			s = color.RedString("%s", d.Text)
		default:
			s = d.Text
		}
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}

func diff(before, after any) ([]diffpatch.Diff, error) {
	b, err := Marshal(before)
	if err != nil {
		return nil, fmt.Errorf("cannot render before state: %w", err)
	}
	a, err := Marshal(after)
	if err != nil {
		return nil, fmt.Errorf("cannot render after state: %w", err)
	}
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMain(string(b), string(a), false)
	return diffCfg.DiffCleanupSemantic(diffs), nil
}

func wantColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
