// Package testlog builds loggers whose output lands in the test log,
// so it only shows for failing or verbose runs.
package testlog

import (
	"testing"

	"github.com/rs/zerolog"
)

// New returns a logger scoped to t.
func New(t *testing.T) zerolog.Logger {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t)).With().Timestamp().Logger()
}
