// Package testutil provides in-memory storage for package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/Lumos-Labs-HQ/knights/internal/database/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// NewSQLite connects a private in-memory database with foreign keys on.
// It is closed when the test ends.
func NewSQLite(t testing.TB) *sqlite.Adapter {
	t.Helper()

	adapter := sqlite.New()
	require.NoError(t, adapter.Connect(context.Background(), ":memory:"))
	t.Cleanup(func() { adapter.Close() })
	return adapter
}

// NewLogger returns a logger that records entries instead of printing them.
func NewLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}
