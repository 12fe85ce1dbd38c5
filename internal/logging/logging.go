// Package logging builds the hclog loggers shared by the server and client.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// TimeFormat prefixes every line with a millisecond-precision timestamp.
const TimeFormat = "2006-01-02 15:04:05.000"

// New returns a logger named name writing to w at the given level.
// An unknown level falls back to info; a nil writer means stdout.
func New(name string, w io.Writer, level string) hclog.Logger {
	if w == nil {
		w = os.Stdout
	}
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      lvl,
		Output:     w,
		TimeFormat: TimeFormat,
		Color:      hclog.ColorOff,
	})
}

// ValidLevel reports whether level names a known hclog level.
func ValidLevel(level string) bool {
	return hclog.LevelFromString(level) != hclog.NoLevel
}
