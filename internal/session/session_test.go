package session_test

import (
	"context"
	"testing"

	"github.com/Lumos-Labs-HQ/knights/internal/config"
	"github.com/Lumos-Labs-HQ/knights/internal/seeder"
	"github.com/Lumos-Labs-HQ/knights/internal/session"
	"github.com/Lumos-Labs-HQ/knights/internal/testutil"
	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) (*session.Session, context.Context) {
	t.Helper()
	log, _ := testutil.NewLogger()
	sess, err := session.New(testutil.NewSQLite(t), "sqlite", log)
	require.NoError(t, err)
	return sess, context.Background()
}

func TestOpenSQLiteFromConfig(t *testing.T) {
	t.Setenv("KNIGHTS_TEST_URL", ":memory:")
	cfg := &config.Config{Database: config.Database{Provider: "sqlite", URLEnv: "KNIGHTS_TEST_URL"}}

	log, _ := testutil.NewLogger()
	sess, err := session.Open(context.Background(), cfg, log)
	require.NoError(t, err)
	require.NoError(t, sess.Ping(context.Background()))

	require.NoError(t, sess.Close())
	require.NoError(t, sess.Close())
}

func TestOpenFailsWithoutDescriptor(t *testing.T) {
	t.Setenv("KNIGHTS_TEST_URL", "")
	cfg := &config.Config{Database: config.Database{Provider: "postgresql", URLEnv: "KNIGHTS_TEST_URL", Port: 5432}}

	_, err := session.Open(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestOpenRejectsUnknownProvider(t *testing.T) {
	cfg := &config.Config{Database: config.Database{Provider: "oracle"}}

	_, err := session.Open(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestCreateAllDropAllNeverViolatesReferences(t *testing.T) {
	sess, ctx := newSession(t)
	data, err := seeder.SampleData()
	require.NoError(t, err)

	for round := 0; round < 2; round++ {
		_, err := sess.Schema.CreateAll(ctx)
		require.NoError(t, err)

		_, err = sess.Seeder.LoadSeed(ctx, data, seeder.LoadOptions{})
		require.NoError(t, err)

		_, err = sess.Schema.DropAll(ctx)
		require.NoError(t, err)
	}
}

func TestDropCascadeOnPopulatedSchema(t *testing.T) {
	sess, ctx := newSession(t)
	_, err := sess.Schema.CreateAll(ctx)
	require.NoError(t, err)

	data, err := seeder.SampleData()
	require.NoError(t, err)
	_, err = sess.Seeder.LoadSeed(ctx, data, seeder.LoadOptions{})
	require.NoError(t, err)

	// Dropping ideas alone is refused while comments and likes exist.
	_, err = sess.Schema.DropTable(ctx, "ideas")
	require.ErrorIs(t, err, types.ErrIntegrity)

	results, err := sess.Schema.DropCascade(ctx, "Idea")
	require.NoError(t, err)
	require.Len(t, results, 3)

	users, err := sess.Validity.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	statuses, err := sess.Schema.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.TableStatus{Table: "users", Exists: true}, statuses[0])
	for _, s := range statuses[1:] {
		assert.False(t, s.Exists, s.Table)
	}
}

func TestSeedThenList(t *testing.T) {
	sess, ctx := newSession(t)
	_, err := sess.Schema.CreateAll(ctx)
	require.NoError(t, err)

	data := types.SeedData{
		Users: []types.User{
			{ID: "u1", Username: "a", Email: "a@example.com"},
			{ID: "u2", Username: "b", Email: "b@example.com"},
		},
		Ideas: []types.Idea{
			{ID: 1, UserID: "u1", Content: "one"},
			{ID: 2, UserID: "u1", Content: "two"},
			{ID: 3, UserID: "u2", Content: "three"},
		},
		Comments: []types.Comment{{ID: 1, IdeaID: 3, UserID: "u1", Content: "c"}},
		Likes:    []types.Like{{ID: 1, IdeaID: 3, UserID: "u1"}},
	}
	report, err := sess.Seeder.LoadSeed(ctx, data, seeder.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 7, report.Total())

	users, err := sess.Validity.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	ideas, err := sess.Validity.ListIdeas(ctx)
	require.NoError(t, err)
	require.Len(t, ideas, 3)
	for _, i := range ideas {
		assert.True(t, i.Valid)
	}
	assert.Equal(t, int64(1), ideas[2].LikeCount)
}
