package common

import (
	"database/sql"

	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/Masterminds/squirrel"
)

var (
	userColumns    = []string{"id", "username", "email", "gender_identity", "sexual_orientation", "note", "valid"}
	commentColumns = []string{"id", "idea_id", "user_id", "content"}
	likeColumns    = []string{"id", "idea_id", "user_id"}
)

// Queries builds the entity statements shared by every adapter. Only the
// placeholder format and the way generated ids come back differ per provider.
type Queries struct {
	qb        squirrel.StatementBuilderType
	returning bool
}

// NewQueries creates a builder. returning appends RETURNING id to inserts of
// tables with generated ids.
func NewQueries(format squirrel.PlaceholderFormat, returning bool) *Queries {
	return &Queries{
		qb:        squirrel.StatementBuilder.PlaceholderFormat(format),
		returning: returning,
	}
}

// The valid column is never part of an insert: new rows take the column
// default, validity only changes through SetValidity.

func (q *Queries) InsertUser(u types.User) (string, []interface{}, error) {
	return q.qb.Insert(types.TableUsers).
		Columns("id", "username", "email", "gender_identity", "sexual_orientation", "note").
		Values(u.ID, u.Username, u.Email, nullString(u.GenderIdentity), nullString(u.SexualOrientation), nullString(u.Note)).
		ToSql()
}

func (q *Queries) InsertIdea(i types.Idea) (string, []interface{}, error) {
	return q.withReturning(q.qb.Insert(types.TableIdeas).
		Columns("user_id", "content").
		Values(i.UserID, i.Content)).ToSql()
}

func (q *Queries) InsertComment(c types.Comment) (string, []interface{}, error) {
	return q.withReturning(q.qb.Insert(types.TableComments).
		Columns("idea_id", "user_id", "content").
		Values(c.IdeaID, c.UserID, c.Content)).ToSql()
}

func (q *Queries) InsertLike(l types.Like) (string, []interface{}, error) {
	return q.withReturning(q.qb.Insert(types.TableLikes).
		Columns("idea_id", "user_id").
		Values(l.IdeaID, l.UserID)).ToSql()
}

func (q *Queries) withReturning(b squirrel.InsertBuilder) squirrel.InsertBuilder {
	if q.returning {
		return b.Suffix("RETURNING id")
	}
	return b
}

func (q *Queries) SetValidity(table string, id interface{}, valid bool) (string, []interface{}, error) {
	return q.qb.Update(table).
		Set("valid", valid).
		Where(squirrel.Eq{"id": id}).
		ToSql()
}

func (q *Queries) SelectUsers() (string, []interface{}, error) {
	return q.qb.Select(userColumns...).From(types.TableUsers).OrderBy("id").ToSql()
}

// SelectIdeas computes like_count from the likes table. withLikes is false
// when that table does not exist, in which case every count is zero.
func (q *Queries) SelectIdeas(withLikes bool) (string, []interface{}, error) {
	if !withLikes {
		return q.qb.Select("id", "user_id", "content", "valid", "0 AS like_count").
			From(types.TableIdeas).
			OrderBy("id").
			ToSql()
	}
	return q.qb.Select("i.id", "i.user_id", "i.content", "i.valid", "COUNT(l.id) AS like_count").
		From(types.TableIdeas + " i").
		LeftJoin(types.TableLikes + " l ON l.idea_id = i.id").
		GroupBy("i.id", "i.user_id", "i.content", "i.valid").
		OrderBy("i.id").
		ToSql()
}

func (q *Queries) SelectComments() (string, []interface{}, error) {
	return q.qb.Select(commentColumns...).From(types.TableComments).OrderBy("id").ToSql()
}

func (q *Queries) SelectLikes() (string, []interface{}, error) {
	return q.qb.Select(likeColumns...).From(types.TableLikes).OrderBy("id").ToSql()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
