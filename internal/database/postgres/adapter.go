package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/knights/internal/database/common"
	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Adapter holds one connection for the whole session. The console is
// single-operator, so there is no pool.
type Adapter struct {
	conn    *pgx.Conn
	qb      squirrel.StatementBuilderType
	queries *common.Queries
}

func New() *Adapter {
	return &Adapter{
		qb:      squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		queries: common.NewQueries(squirrel.Dollar, true),
	}
}

func (p *Adapter) Connect(ctx context.Context, url string) error {
	config, err := pgx.ParseConfig(url)
	if err != nil {
		return types.NewStoreError(types.ErrConnection, "parse connection URL", "", err)
	}

	config.DefaultQueryExecMode = pgx.QueryExecModeExec

	conn, err := pgx.ConnectConfig(ctx, config)
	if err != nil {
		return classify("connect to", config.Database, err)
	}

	p.conn = conn
	return nil
}

func (p *Adapter) Close() error {
	if p.conn != nil {
		return p.conn.Close(context.Background())
	}
	return nil
}

func (p *Adapter) Ping(ctx context.Context) error {
	if err := p.conn.Ping(ctx); err != nil {
		return classify("ping", "", err)
	}
	return nil
}

// classify maps SQLSTATE class 23 (integrity constraint violation) and
// 2BP01 (dependent objects still exist) to ErrIntegrity.
func classify(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.HasPrefix(pgErr.Code, "23") || pgErr.Code == "2BP01" {
			return types.NewStoreError(types.ErrIntegrity, op, table, err)
		}
	}
	return types.NewStoreError(types.ErrConnection, op, table, err)
}

func (p *Adapter) exec(ctx context.Context, op, table, query string, args ...interface{}) (int64, error) {
	tag, err := p.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, classify(op, table, err)
	}
	return tag.RowsAffected(), nil
}

func (p *Adapter) InsertUser(ctx context.Context, user types.User) (string, error) {
	query, args, err := p.queries.InsertUser(user)
	if err != nil {
		return "", fmt.Errorf("failed to build insert: %w", err)
	}
	if _, err := p.exec(ctx, "insert into", types.TableUsers, query, args...); err != nil {
		return "", err
	}
	return user.ID, nil
}

func (p *Adapter) InsertIdea(ctx context.Context, idea types.Idea) (int64, error) {
	query, args, err := p.queries.InsertIdea(idea)
	if err != nil {
		return 0, fmt.Errorf("failed to build insert: %w", err)
	}
	return p.insertReturning(ctx, types.TableIdeas, query, args)
}

func (p *Adapter) InsertComment(ctx context.Context, comment types.Comment) (int64, error) {
	query, args, err := p.queries.InsertComment(comment)
	if err != nil {
		return 0, fmt.Errorf("failed to build insert: %w", err)
	}
	return p.insertReturning(ctx, types.TableComments, query, args)
}

func (p *Adapter) InsertLike(ctx context.Context, like types.Like) (int64, error) {
	query, args, err := p.queries.InsertLike(like)
	if err != nil {
		return 0, fmt.Errorf("failed to build insert: %w", err)
	}
	return p.insertReturning(ctx, types.TableLikes, query, args)
}

func (p *Adapter) insertReturning(ctx context.Context, table, query string, args []interface{}) (int64, error) {
	var id int64
	if err := p.conn.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, classify("insert into", table, err)
	}
	return id, nil
}

func (p *Adapter) SetUserValidity(ctx context.Context, id string, valid bool) (int64, error) {
	query, args, err := p.queries.SetValidity(types.TableUsers, id, valid)
	if err != nil {
		return 0, fmt.Errorf("failed to build update: %w", err)
	}
	return p.exec(ctx, "update", types.TableUsers, query, args...)
}

func (p *Adapter) SetIdeaValidity(ctx context.Context, id int64, valid bool) (int64, error) {
	query, args, err := p.queries.SetValidity(types.TableIdeas, id, valid)
	if err != nil {
		return 0, fmt.Errorf("failed to build update: %w", err)
	}
	return p.exec(ctx, "update", types.TableIdeas, query, args...)
}

func (p *Adapter) ListUsers(ctx context.Context) ([]types.User, error) {
	query, args, err := p.queries.SelectUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}
	return collect(ctx, p, types.TableUsers, query, args, common.ScanUser)
}

func (p *Adapter) ListIdeas(ctx context.Context) ([]types.Idea, error) {
	withLikes, err := p.CheckTableExists(ctx, types.TableLikes)
	if err != nil {
		return nil, err
	}
	query, args, err := p.queries.SelectIdeas(withLikes)
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}
	return collect(ctx, p, types.TableIdeas, query, args, common.ScanIdea)
}

func (p *Adapter) ListComments(ctx context.Context) ([]types.Comment, error) {
	query, args, err := p.queries.SelectComments()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}
	return collect(ctx, p, types.TableComments, query, args, common.ScanComment)
}

func (p *Adapter) ListLikes(ctx context.Context) ([]types.Like, error) {
	query, args, err := p.queries.SelectLikes()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}
	return collect(ctx, p, types.TableLikes, query, args, common.ScanLike)
}

func collect[T any](ctx context.Context, p *Adapter, table, query string, args []interface{}, scan func(common.RowScanner) (T, error)) ([]T, error) {
	rows, err := p.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, classify("select from", table, err)
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, classify("scan", table, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("select from", table, err)
	}
	return result, nil
}
