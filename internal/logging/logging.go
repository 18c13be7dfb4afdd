// Package logging builds the structured logger the CLI hands to commands.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New returns a logger writing to w at the named level (debug, info, warn,
// error). An unknown level falls back to info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "sprig",
		ReportTimestamp: lvl == log.DebugLevel,
	})
}

// NewBuildID returns a fresh identifier for one CLI invocation.
func NewBuildID() string {
	return uuid.New().String()
}

// ForBuild returns a child logger tagged with a new build ID.
func ForBuild(logger *log.Logger) (*log.Logger, string) {
	id := NewBuildID()
	return logger.With("build", id), id
}
