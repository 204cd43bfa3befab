package common

import (
	"database/sql"

	"github.com/Lumos-Labs-HQ/knights/internal/types"
)

// RowScanner is satisfied by *sql.Rows, *sql.Row and pgx.Rows.
type RowScanner interface {
	Scan(dest ...interface{}) error
}

func ScanUser(row RowScanner) (types.User, error) {
	var u types.User
	var gi, so, note sql.NullString
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &gi, &so, &note, &u.Valid); err != nil {
		return u, err
	}
	u.GenderIdentity = gi.String
	u.SexualOrientation = so.String
	u.Note = note.String
	return u, nil
}

func ScanIdea(row RowScanner) (types.Idea, error) {
	var i types.Idea
	err := row.Scan(&i.ID, &i.UserID, &i.Content, &i.Valid, &i.LikeCount)
	return i, err
}

func ScanComment(row RowScanner) (types.Comment, error) {
	var c types.Comment
	err := row.Scan(&c.ID, &c.IdeaID, &c.UserID, &c.Content)
	return c, err
}

func ScanLike(row RowScanner) (types.Like, error) {
	var l types.Like
	err := row.Scan(&l.ID, &l.IdeaID, &l.UserID)
	return l, err
}
