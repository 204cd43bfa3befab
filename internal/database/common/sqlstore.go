package common

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/knights/internal/types"
)

// ClassifyFunc turns a driver error into a *types.StoreError.
type ClassifyFunc func(op, table string, err error) error

// SQLStore implements the entity operations on top of database/sql. The
// mysql and sqlite adapters embed it and add their own DDL and error
// classification.
type SQLStore struct {
	DB       *sql.DB
	Queries  *Queries
	Classify ClassifyFunc
}

// ExecScript runs every statement of a DDL script in order.
func (s *SQLStore) ExecScript(ctx context.Context, op, table, script string) error {
	for _, stmt := range ParseSQLStatements(script) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return s.Classify(op, table, err)
		}
	}
	return nil
}

func (s *SQLStore) InsertUser(ctx context.Context, user types.User) (string, error) {
	query, args, err := s.Queries.InsertUser(user)
	if err != nil {
		return "", fmt.Errorf("failed to build insert: %w", err)
	}
	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		return "", s.Classify("insert into", types.TableUsers, err)
	}
	return user.ID, nil
}

func (s *SQLStore) InsertIdea(ctx context.Context, idea types.Idea) (int64, error) {
	query, args, err := s.Queries.InsertIdea(idea)
	if err != nil {
		return 0, fmt.Errorf("failed to build insert: %w", err)
	}
	return s.insert(ctx, types.TableIdeas, query, args)
}

func (s *SQLStore) InsertComment(ctx context.Context, comment types.Comment) (int64, error) {
	query, args, err := s.Queries.InsertComment(comment)
	if err != nil {
		return 0, fmt.Errorf("failed to build insert: %w", err)
	}
	return s.insert(ctx, types.TableComments, query, args)
}

func (s *SQLStore) InsertLike(ctx context.Context, like types.Like) (int64, error) {
	query, args, err := s.Queries.InsertLike(like)
	if err != nil {
		return 0, fmt.Errorf("failed to build insert: %w", err)
	}
	return s.insert(ctx, types.TableLikes, query, args)
}

func (s *SQLStore) insert(ctx context.Context, table, query string, args []interface{}) (int64, error) {
	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, s.Classify("insert into", table, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, s.Classify("read generated id of", table, err)
	}
	return id, nil
}

func (s *SQLStore) SetUserValidity(ctx context.Context, id string, valid bool) (int64, error) {
	return s.setValidity(ctx, types.TableUsers, id, valid)
}

func (s *SQLStore) SetIdeaValidity(ctx context.Context, id int64, valid bool) (int64, error) {
	return s.setValidity(ctx, types.TableIdeas, id, valid)
}

func (s *SQLStore) setValidity(ctx context.Context, table string, id interface{}, valid bool) (int64, error) {
	query, args, err := s.Queries.SetValidity(table, id, valid)
	if err != nil {
		return 0, fmt.Errorf("failed to build update: %w", err)
	}
	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, s.Classify("update", table, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, s.Classify("update", table, err)
	}
	return n, nil
}

func (s *SQLStore) ListUsers(ctx context.Context) ([]types.User, error) {
	query, args, err := s.Queries.SelectUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}
	return queryAll(ctx, s, types.TableUsers, query, args, ScanUser)
}

// QueryIdeas lists ideas; withLikes selects whether like counts come from
// the likes table.
func (s *SQLStore) QueryIdeas(ctx context.Context, withLikes bool) ([]types.Idea, error) {
	query, args, err := s.Queries.SelectIdeas(withLikes)
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}
	return queryAll(ctx, s, types.TableIdeas, query, args, ScanIdea)
}

func (s *SQLStore) ListComments(ctx context.Context) ([]types.Comment, error) {
	query, args, err := s.Queries.SelectComments()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}
	return queryAll(ctx, s, types.TableComments, query, args, ScanComment)
}

func (s *SQLStore) ListLikes(ctx context.Context) ([]types.Like, error) {
	query, args, err := s.Queries.SelectLikes()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}
	return queryAll(ctx, s, types.TableLikes, query, args, ScanLike)
}

func queryAll[T any](ctx context.Context, s *SQLStore, table, query string, args []interface{}, scan func(RowScanner) (T, error)) ([]T, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.Classify("select from", table, err)
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, s.Classify("scan", table, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, s.Classify("select from", table, err)
	}
	return result, nil
}
