package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Lumos-Labs-HQ/knights/internal/database/common"
	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
)

type Adapter struct {
	*common.SQLStore
	qb   squirrel.StatementBuilderType
	path string
}

func New() *Adapter {
	return &Adapter{
		SQLStore: &common.SQLStore{
			Queries:  common.NewQueries(squirrel.Question, false),
			Classify: classify,
		},
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Connect opens the database file (or :memory:) with foreign keys enforced.
// The pool is capped at one connection so an in-memory database is shared
// by every statement of the session.
func (s *Adapter) Connect(ctx context.Context, url string) error {
	dbPath := strings.TrimPrefix(url, "sqlite://")

	s.path = dbPath
	if idx := strings.Index(s.path, "?"); idx > 0 {
		s.path = s.path[:idx]
	}

	if !strings.Contains(dbPath, "_foreign_keys") && !strings.Contains(dbPath, "_fk") {
		if strings.Contains(dbPath, "?") {
			dbPath += "&_foreign_keys=on"
		} else {
			dbPath += "?_foreign_keys=on"
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return classify("open", s.path, err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return classify("connect to", s.path, err)
	}

	s.DB = db
	return nil
}

func (s *Adapter) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

func (s *Adapter) Ping(ctx context.Context) error {
	if err := s.DB.PingContext(ctx); err != nil {
		return classify("ping", s.path, err)
	}
	return nil
}

func classify(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return types.NewStoreError(types.ErrIntegrity, op, table, err)
	}
	return types.NewStoreError(types.ErrConnection, op, table, err)
}
