package common

import (
	"testing"

	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertNeverWritesValidity(t *testing.T) {
	q := NewQueries(squirrel.Question, false)

	query, args, err := q.InsertUser(types.User{ID: "u1", Username: "a", Email: "a@example.com", Valid: false})
	require.NoError(t, err)
	assert.NotContains(t, query, "valid")
	assert.Len(t, args, 6)

	query, _, err = q.InsertIdea(types.Idea{UserID: "u1", Content: "x", Valid: false, LikeCount: 9})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO ideas (user_id,content) VALUES (?,?)", query)
}

func TestInsertReturning(t *testing.T) {
	q := NewQueries(squirrel.Dollar, true)

	query, args, err := q.InsertComment(types.Comment{IdeaID: 1, UserID: "u1", Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO comments (idea_id,user_id,content) VALUES ($1,$2,$3) RETURNING id", query)
	assert.Equal(t, []interface{}{int64(1), "u1", "x"}, args)
}

func TestSetValidity(t *testing.T) {
	q := NewQueries(squirrel.Dollar, true)

	query, args, err := q.SetValidity(types.TableIdeas, int64(7), false)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE ideas SET valid = $1 WHERE id = $2", query)
	assert.Equal(t, []interface{}{false, int64(7)}, args)
}

func TestSelectIdeasCountsLikes(t *testing.T) {
	q := NewQueries(squirrel.Question, false)

	query, _, err := q.SelectIdeas(true)
	require.NoError(t, err)
	assert.Contains(t, query, "COUNT(l.id) AS like_count")
	assert.Contains(t, query, "LEFT JOIN likes l ON l.idea_id = i.id")

	query, _, err = q.SelectIdeas(false)
	require.NoError(t, err)
	assert.Contains(t, query, "0 AS like_count")
	assert.NotContains(t, query, "likes")
}

func TestParseSQLStatements(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []string
	}{
		{
			name:   "leading comment and quoted semicolon",
			script: "-- users\nCREATE TABLE \"a\" (x TEXT DEFAULT 'a;b');\nCREATE INDEX \"i\" ON \"a\" (x);",
			want:   []string{`CREATE TABLE "a" (x TEXT DEFAULT 'a;b')`, `CREATE INDEX "i" ON "a" (x)`},
		},
		{
			name:   "doubled quote",
			script: "INSERT INTO t VALUES ('it''s; fine');SELECT 1",
			want:   []string{"INSERT INTO t VALUES ('it''s; fine')", "SELECT 1"},
		},
		{
			name:   "trailing comment",
			script: "DROP TABLE `x;y`; -- done; really",
			want:   []string{"DROP TABLE `x;y`"},
		},
		{
			name:   "dashes inside a literal",
			script: "SELECT '--not a comment'",
			want:   []string{"SELECT '--not a comment'"},
		},
		{
			name:   "empty statements",
			script: " ; ;\n",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSQLStatements(tt.script))
		})
	}
}
