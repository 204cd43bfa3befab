package schema_test

import (
	"context"
	"testing"

	"github.com/Lumos-Labs-HQ/knights/internal/schema"
	"github.com/Lumos-Labs-HQ/knights/internal/testutil"
	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) (*schema.Manager, context.Context) {
	t.Helper()
	log, _ := testutil.NewLogger()
	m, err := schema.NewManager(testutil.NewSQLite(t), schema.Tables, log)
	require.NoError(t, err)
	return m, context.Background()
}

func tableNames(results []types.TableResult) []string {
	var names []string
	for _, r := range results {
		names = append(names, r.Table)
	}
	return names
}

func TestCreateTableIsIdempotent(t *testing.T) {
	m, ctx := newManager(t)

	created, err := m.CreateTable(ctx, "users")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = m.CreateTable(ctx, "users")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestCreateTableRefusesMissingParent(t *testing.T) {
	m, ctx := newManager(t)

	_, err := m.CreateTable(ctx, "likes")
	require.ErrorIs(t, err, types.ErrIntegrity)

	statuses, err := m.Status(ctx)
	require.NoError(t, err)
	for _, s := range statuses {
		assert.False(t, s.Exists, s.Table)
	}
}

func TestCreateAllThenDropAll(t *testing.T) {
	m, ctx := newManager(t)

	results, err := m.CreateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "ideas", "comments", "likes"}, tableNames(results))
	for _, r := range results {
		assert.True(t, r.Changed, r.Table)
	}

	results, err = m.CreateAll(ctx)
	require.NoError(t, err)
	for _, r := range results {
		assert.False(t, r.Changed, r.Table)
	}

	results, err = m.DropAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"likes", "comments", "ideas", "users"}, tableNames(results))
	for _, r := range results {
		assert.True(t, r.Changed, r.Table)
	}

	results, err = m.DropAll(ctx)
	require.NoError(t, err)
	for _, r := range results {
		assert.False(t, r.Changed, r.Table)
	}
}

func TestDropTableAbsent(t *testing.T) {
	m, ctx := newManager(t)

	dropped, err := m.DropTable(ctx, "ideas")
	require.NoError(t, err)
	assert.False(t, dropped)
}

func TestDropTableRefusedWhileReferenced(t *testing.T) {
	m, ctx := newManager(t)
	_, err := m.CreateAll(ctx)
	require.NoError(t, err)

	dropped, err := m.DropTable(ctx, "users")
	require.ErrorIs(t, err, types.ErrIntegrity)
	assert.False(t, dropped)

	statuses, err := m.Status(ctx)
	require.NoError(t, err)
	for _, s := range statuses {
		assert.True(t, s.Exists, s.Table)
	}

	// Once the leaf is gone its parent can go too.
	dropped, err = m.DropTable(ctx, "likes")
	require.NoError(t, err)
	assert.True(t, dropped)

	_, err = m.DropTable(ctx, "ideas")
	require.ErrorIs(t, err, types.ErrIntegrity)
}

func TestDropTableUnknownName(t *testing.T) {
	m, ctx := newManager(t)

	_, err := m.DropTable(ctx, "posts")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestDropCascadeLeavesParentsAlone(t *testing.T) {
	m, ctx := newManager(t)
	_, err := m.CreateAll(ctx)
	require.NoError(t, err)

	results, err := m.DropCascade(ctx, "Idea")
	require.NoError(t, err)
	assert.Equal(t, []string{"likes", "comments", "ideas"}, tableNames(results))

	statuses, err := m.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.TableStatus{
		{Table: "users", Exists: true},
		{Table: "ideas", Exists: false},
		{Table: "comments", Exists: false},
		{Table: "likes", Exists: false},
	}, statuses)
}

func TestDropCascadeSkipsAbsentDependents(t *testing.T) {
	m, ctx := newManager(t)
	for _, name := range []string{"users", "ideas"} {
		_, err := m.CreateTable(ctx, name)
		require.NoError(t, err)
	}

	results, err := m.DropCascade(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []types.TableResult{
		{Table: "likes", Changed: false},
		{Table: "comments", Changed: false},
		{Table: "ideas", Changed: true},
		{Table: "users", Changed: true},
	}, results)
}
