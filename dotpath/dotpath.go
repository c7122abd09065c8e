package dotpath

import (
	"fmt"
	"strconv"
	"strings"
)

// Symbol is an opaque property key. Two symbols with the same description
// are distinct keys but render to the same path segment; the textual form
// embeds only the description.
type Symbol struct {
	desc string
}

// NewSymbol creates a new opaque key with the given description.
func NewSymbol(desc string) *Symbol {
	return &Symbol{desc: desc}
}

// Desc returns the symbol's description.
func (s *Symbol) Desc() string {
	return s.desc
}

func (s *Symbol) String() string {
	return "Symbol(" + s.desc + ")"
}

// Render stringifies a property key into a path segment.
//
// Strings render as themselves, except strings of the exact form
// "Symbol(...)" which get a leading backslash so they cannot collide with
// the rendering of an opaque key. Integer keys render in decimal, with no
// distinction from their string form. Opaque keys render as Symbol(desc).
func Render(key any) string {
	switch k := key.(type) {
	case string:
		if symbolLike(k) {
			return `\` + k
		}
		return k
	case *Symbol:
		return k.String()
	case int:
		return strconv.Itoa(k)
	case int64:
		return strconv.FormatInt(k, 10)
	case uint:
		return strconv.FormatUint(uint64(k), 10)
	default:
		return fmt.Sprint(key)
	}
}

func symbolLike(s string) bool {
	return strings.HasPrefix(s, "Symbol(") && strings.HasSuffix(s, ")")
}

// Join joins rendered segments into a path, shallowest first.
func Join(segs []string) string {
	return strings.Join(segs, ".")
}

// Append extends a path with one more rendered segment.
func Append(path, seg string) string {
	if path == "" {
		return seg
	}
	return path + "." + seg
}

// Head returns the first segment of a path.
func Head(path string) string {
	head, _, _ := strings.Cut(path, ".")
	return head
}
