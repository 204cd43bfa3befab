package console

import (
	"context"
	"testing"

	"github.com/Lumos-Labs-HQ/knights/internal/session"
	"github.com/Lumos-Labs-HQ/knights/internal/testutil"
	"github.com/Lumos-Labs-HQ/knights/internal/types"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) (Model, *session.Session) {
	t.Helper()
	log, _ := testutil.NewLogger()
	sess, err := session.New(testutil.NewSQLite(t), "sqlite", log)
	require.NoError(t, err)
	return NewModel(context.Background(), sess), sess
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

// press feeds one key and runs the resulting command until an operation
// result arrives. Commands of non-busy modes are cursor blinks and are
// not run.
func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if m.Mode() != ModeBusy {
		return m
	}
	for _, res := range drain(cmd) {
		next, _ = m.Update(res)
		m = next.(Model)
	}
	return m
}

func drain(cmd tea.Cmd) []resultMsg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case resultMsg:
		return []resultMsg{msg}
	case tea.BatchMsg:
		var out []resultMsg
		for _, c := range msg {
			if c == nil {
				continue
			}
			if r, ok := c().(resultMsg); ok {
				out = append(out, r)
			}
		}
		return out
	}
	return nil
}

func TestCreateSeedAndQuery(t *testing.T) {
	m, sess := newTestModel(t)

	m = press(t, m, keys("T"))
	require.Equal(t, ModeResult, m.Mode())
	require.NoError(t, m.result.err)
	assert.Contains(t, m.result.text, "Created 'likes' table")

	m = press(t, m, keys("x"))
	require.Equal(t, ModeMenu, m.Mode())

	m = press(t, m, keys("S"))
	require.Equal(t, ModeResult, m.Mode())
	require.NoError(t, m.result.err)
	assert.Contains(t, m.result.text, "Inserted 7 record(s)")

	m = press(t, m, keys("x"))
	m = press(t, m, keys("*"))
	require.Equal(t, ModeTable, m.Mode())
	m = press(t, m, keys("i"))
	require.Equal(t, ModeResult, m.Mode())
	require.NoError(t, m.result.err)
	assert.Contains(t, m.result.text, "Late night shuttle")

	ideas, err := sess.Validity.ListIdeas(context.Background())
	require.NoError(t, err)
	assert.Len(t, ideas, 3)
}

func TestSetValidityFlow(t *testing.T) {
	m, sess := newTestModel(t)
	m = press(t, m, keys("T"))
	m = press(t, m, keys("x"))
	m = press(t, m, keys("S"))
	m = press(t, m, keys("x"))

	m = press(t, m, keys("V"))
	require.Equal(t, ModeTable, m.Mode())
	m = press(t, m, keys("I"))
	require.Equal(t, ModeID, m.Mode())
	m = press(t, m, keys("2"))
	m = press(t, m, enter)
	require.Equal(t, ModeDirective, m.Mode())
	m = press(t, m, keys("I"))
	require.Equal(t, ModeResult, m.Mode())
	require.NoError(t, m.result.err)
	assert.False(t, m.result.warn)

	ideas, err := sess.Validity.ListIdeas(context.Background())
	require.NoError(t, err)
	assert.False(t, ideas[1].Valid)
	assert.True(t, ideas[0].Valid)
}

func TestSetValidityBadID(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keys("T"))
	m = press(t, m, keys("x"))

	m = press(t, m, keys("V"))
	m = press(t, m, keys("I"))
	m = press(t, m, keys("abc"))
	m = press(t, m, enter)
	m = press(t, m, keys("R"))

	require.Equal(t, ModeResult, m.Mode())
	assert.ErrorIs(t, m.result.err, types.ErrInvalidArgument)
}

func TestDropNeedsConfirmation(t *testing.T) {
	m, sess := newTestModel(t)
	ctx := context.Background()
	m = press(t, m, keys("T"))
	m = press(t, m, keys("x"))

	m = press(t, m, keys("D"))
	m = press(t, m, keys("I"))
	require.Equal(t, ModeConfirm, m.Mode())

	m = press(t, m, keys("n"))
	require.Equal(t, ModeMenu, m.Mode())
	statuses, err := sess.Schema.Status(ctx)
	require.NoError(t, err)
	for _, s := range statuses {
		assert.True(t, s.Exists, s.Table)
	}

	m = press(t, m, keys("D"))
	m = press(t, m, keys("I"))
	m = press(t, m, keys("y"))
	require.Equal(t, ModeResult, m.Mode())
	require.NoError(t, m.result.err)

	statuses, err = sess.Schema.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.TableStatus{
		{Table: "users", Exists: true},
		{Table: "ideas", Exists: false},
		{Table: "comments", Exists: false},
		{Table: "likes", Exists: false},
	}, statuses)
}

func TestQuitFromMenu(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(keys("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewRendersEveryMode(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Contains(t, m.View(), "Main Menu")

	m = press(t, m, keys("V"))
	assert.Contains(t, m.View(), "Set validity")

	m = press(t, m, keys("U"))
	assert.Contains(t, m.View(), "Input ID of users")
}
