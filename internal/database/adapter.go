package database

import (
	"context"

	"github.com/Lumos-Labs-HQ/knights/internal/types"
)

// DatabaseAdapter is the storage access used by the core. Every error it
// returns for a storage fault is a *types.StoreError classified as
// types.ErrIntegrity or types.ErrConnection.
type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// Schema operations
	CheckTableExists(ctx context.Context, tableName string) (bool, error)
	CreateTable(ctx context.Context, table types.SchemaTable) error
	DropTable(ctx context.Context, tableName string) error

	// Entity writes. Generated ids are returned to the caller.
	InsertUser(ctx context.Context, user types.User) (string, error)
	InsertIdea(ctx context.Context, idea types.Idea) (int64, error)
	InsertComment(ctx context.Context, comment types.Comment) (int64, error)
	InsertLike(ctx context.Context, like types.Like) (int64, error)

	// Validity updates return the number of matched rows.
	SetUserValidity(ctx context.Context, id string, valid bool) (int64, error)
	SetIdeaValidity(ctx context.Context, id int64, valid bool) (int64, error)

	// Entity reads
	ListUsers(ctx context.Context) ([]types.User, error)
	ListIdeas(ctx context.Context) ([]types.Idea, error)
	ListComments(ctx context.Context) ([]types.Comment, error)
	ListLikes(ctx context.Context) ([]types.Like, error)

	// SQL generation. Indexes are provider-specific: some providers emit
	// separate statements, MySQL declares them inside CREATE TABLE.
	GenerateCreateTableSQL(table types.SchemaTable) string
	FormatColumnType(column types.SchemaColumn) string
}
