//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/knights/internal/database/postgres"
	"github.com/Lumos-Labs-HQ/knights/internal/seeder"
	"github.com/Lumos-Labs-HQ/knights/internal/session"
	"github.com/Lumos-Labs-HQ/knights/internal/testutil"
	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupSession(t *testing.T) *session.Session {
	t.Helper()
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:16-alpine",
		pgcontainer.WithDatabase("knights"),
		pgcontainer.WithUsername("knights"),
		pgcontainer.WithPassword("knights"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	adapter := postgres.New()
	require.NoError(t, adapter.Connect(ctx, connStr))

	log, _ := testutil.NewLogger()
	sess, err := session.New(adapter, "postgresql", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })
	return sess
}

func TestPostgresLifecycle(t *testing.T) {
	sess := setupSession(t)
	ctx := context.Background()

	_, err := sess.Schema.CreateAll(ctx)
	require.NoError(t, err)

	data, err := seeder.SampleData()
	require.NoError(t, err)
	report, err := sess.Seeder.LoadSeed(ctx, data, seeder.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 7, report.Total())

	ideas, err := sess.Validity.ListIdeas(ctx)
	require.NoError(t, err)
	require.Len(t, ideas, 3)
	assert.Equal(t, int64(1), ideas[0].LikeCount)
	assert.Equal(t, int64(0), ideas[1].LikeCount)

	n, err := sess.Validity.SetIdeaValidity(ctx, "2", types.Invalid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = sess.Validity.SetUserValidity(ctx, "nobody", types.Invalid)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	ideas, err = sess.Validity.ListIdeas(ctx)
	require.NoError(t, err)
	assert.False(t, ideas[1].Valid)

	results, err := sess.Schema.DropCascade(ctx, types.TableIdeas)
	require.NoError(t, err)
	assert.Equal(t, []types.TableResult{
		{Table: types.TableLikes, Changed: true},
		{Table: types.TableComments, Changed: true},
		{Table: types.TableIdeas, Changed: true},
	}, results)

	users, err := sess.Validity.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestPostgresIntegrityErrors(t *testing.T) {
	sess := setupSession(t)
	ctx := context.Background()

	_, err := sess.Schema.CreateAll(ctx)
	require.NoError(t, err)

	_, err = sess.Seeder.LoadSeed(ctx, types.SeedData{
		Comments: []types.Comment{{ID: 1, IdeaID: 42, UserID: "ghost", Content: "orphan"}},
	}, seeder.LoadOptions{})
	assert.ErrorIs(t, err, types.ErrIntegrity)

	_, err = sess.Schema.DropTable(ctx, types.TableUsers)
	assert.ErrorIs(t, err, types.ErrIntegrity)

	exists, err := sess.Schema.Status(ctx)
	require.NoError(t, err)
	for _, s := range exists {
		assert.True(t, s.Exists, s.Table)
	}
}
