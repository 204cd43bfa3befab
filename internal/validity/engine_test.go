package validity

import (
	"context"
	"testing"

	"github.com/Lumos-Labs-HQ/knights/internal/database"
	"github.com/Lumos-Labs-HQ/knights/internal/schema"
	"github.com/Lumos-Labs-HQ/knights/internal/seeder"
	"github.com/Lumos-Labs-HQ/knights/internal/testutil"
	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingAdapter records storage calls. Anything not overridden panics,
// which is what a test that expects no storage access wants.
type countingAdapter struct {
	database.DatabaseAdapter
	calls int
}

func (c *countingAdapter) SetUserValidity(ctx context.Context, id string, valid bool) (int64, error) {
	c.calls++
	return 1, nil
}

func (c *countingAdapter) SetIdeaValidity(ctx context.Context, id int64, valid bool) (int64, error) {
	c.calls++
	return 1, nil
}

func TestSetIdeaValidityRejectsNonNumericID(t *testing.T) {
	adapter := &countingAdapter{}
	e := NewEngine(adapter, nil)

	for _, id := range []string{"abc", "", "7.5", "1e3"} {
		n, err := e.SetIdeaValidity(context.Background(), id, types.Invalid)
		assert.ErrorIs(t, err, types.ErrInvalidArgument, id)
		assert.Zero(t, n)
	}
	assert.Zero(t, adapter.calls)
}

func TestSetUserValidityRejectsEmptyID(t *testing.T) {
	adapter := &countingAdapter{}
	e := NewEngine(adapter, nil)

	_, err := e.SetUserValidity(context.Background(), "  ", types.Invalid)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
	assert.Zero(t, adapter.calls)
}

func TestSetRejectsTablesWithoutFlag(t *testing.T) {
	adapter := &countingAdapter{}
	e := NewEngine(adapter, nil)

	_, err := e.Set(context.Background(), types.TableComments, "1", types.Invalid)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
	assert.Zero(t, adapter.calls)

	_, err = e.Set(context.Background(), types.TableIdeas, " 12 ", types.Valid)
	require.NoError(t, err)
	assert.Equal(t, 1, adapter.calls)
}

func newSeededEngine(t *testing.T) (*Engine, context.Context) {
	t.Helper()
	ctx := context.Background()
	log, _ := testutil.NewLogger()
	adapter := testutil.NewSQLite(t)

	m, err := schema.NewManager(adapter, schema.Tables, log)
	require.NoError(t, err)
	_, err = m.CreateAll(ctx)
	require.NoError(t, err)

	data, err := seeder.SampleData()
	require.NoError(t, err)
	_, err = seeder.NewSeeder(adapter, m.Graph(), log).LoadSeed(ctx, data, seeder.LoadOptions{})
	require.NoError(t, err)

	return NewEngine(adapter, log), ctx
}

func TestCheckID(t *testing.T) {
	tests := []struct {
		table string
		id    string
		ok    bool
	}{
		{table: types.TableUsers, id: "108245374629101182934", ok: true},
		{table: types.TableUsers, id: "  ", ok: false},
		{table: types.TableIdeas, id: "42", ok: true},
		{table: types.TableIdeas, id: "abc", ok: false},
		{table: types.TableComments, id: "1", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.table+"/"+tt.id, func(t *testing.T) {
			err := CheckID(tt.table, tt.id)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, types.ErrInvalidArgument)
			}
		})
	}
}

func TestSetIdeaValidityNotFound(t *testing.T) {
	e, ctx := newSeededEngine(t)

	n, err := e.SetIdeaValidity(ctx, "7", types.Invalid)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInvalidateIdeaIsIdempotent(t *testing.T) {
	e, ctx := newSeededEngine(t)

	for i := 0; i < 2; i++ {
		n, err := e.SetIdeaValidity(ctx, "2", types.Invalid)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	}

	ideas, err := e.ListIdeas(ctx)
	require.NoError(t, err)
	require.Len(t, ideas, 3)
	for _, i := range ideas {
		assert.Equal(t, i.ID != 2, i.Valid, "idea %d", i.ID)
	}

	n, err := e.SetIdeaValidity(ctx, "2", types.Valid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ideas, err = e.ListIdeas(ctx)
	require.NoError(t, err)
	assert.True(t, ideas[1].Valid)
}

func TestInvalidUsersStayListed(t *testing.T) {
	e, ctx := newSeededEngine(t)

	n, err := e.SetUserValidity(ctx, "108245374629101182934", types.Invalid)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = e.SetUserValidity(ctx, "no-such-user", types.Invalid)
	require.NoError(t, err)
	assert.Zero(t, n)

	users, err := e.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.False(t, users[0].Valid)
	assert.True(t, users[1].Valid)

	// Invalidating a user does not touch their ideas.
	ideas, err := e.ListIdeas(ctx)
	require.NoError(t, err)
	for _, i := range ideas {
		assert.True(t, i.Valid)
	}
}

func TestListCommentsAndLikes(t *testing.T) {
	e, ctx := newSeededEngine(t)

	comments, err := e.ListComments(ctx)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	likes, err := e.ListLikes(ctx)
	require.NoError(t, err)
	assert.Len(t, likes, 1)
}

func TestParseValidity(t *testing.T) {
	v, err := types.ParseValidity("invalidate")
	require.NoError(t, err)
	assert.Equal(t, types.Invalid, v)

	v, err = types.ParseValidity(" Restore ")
	require.NoError(t, err)
	assert.Equal(t, types.Valid, v)

	_, err = types.ParseValidity("delete")
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}
