package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Wrap      bool
	Propagate bool
	Notify    bool
	Schema    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Wrap = boolEnv("TRACK_DEBUG_WRAP")
	d.Propagate = boolEnv("TRACK_DEBUG_PROPAGATE")
	d.Notify = boolEnv("TRACK_DEBUG_NOTIFY")
	d.Schema = boolEnv("TRACK_DEBUG_SCHEMA")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Wrap() bool {
	return d.Wrap
}
func Propagate() bool {
	return d.Propagate
}
func Notify() bool {
	return d.Notify
}
func Schema() bool {
	return d.Schema
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
