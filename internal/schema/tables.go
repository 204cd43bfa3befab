package schema

import (
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/knights/internal/types"
)

// Tables is the catalogue of the admin schema. A new entity only needs to be
// declared here with its foreign-key columns; create, drop and load order are
// derived from the references.
var Tables = []types.SchemaTable{
	{
		Name:   types.TableUsers,
		Entity: "User",
		Columns: []types.SchemaColumn{
			{Name: "id", Type: "VARCHAR(255)", IsPrimary: true},
			{Name: "username", Type: "VARCHAR(255)"},
			{Name: "email", Type: "VARCHAR(255)", IsUnique: true},
			{Name: "gender_identity", Type: "VARCHAR(255)", Nullable: true},
			{Name: "sexual_orientation", Type: "VARCHAR(255)", Nullable: true},
			{Name: "note", Type: "TEXT", Nullable: true},
			{Name: "valid", Type: "BOOLEAN", Default: "TRUE"},
		},
	},
	{
		Name:   types.TableIdeas,
		Entity: "Idea",
		Columns: []types.SchemaColumn{
			{Name: "id", Type: "INTEGER", IsPrimary: true, IsAutoIncrement: true},
			{Name: "user_id", Type: "VARCHAR(255)", ForeignKeyTable: types.TableUsers, ForeignKeyColumn: "id"},
			{Name: "content", Type: "TEXT"},
			{Name: "valid", Type: "BOOLEAN", Default: "TRUE"},
		},
	},
	{
		Name:   types.TableComments,
		Entity: "Comment",
		Columns: []types.SchemaColumn{
			{Name: "id", Type: "INTEGER", IsPrimary: true, IsAutoIncrement: true},
			{Name: "idea_id", Type: "INTEGER", ForeignKeyTable: types.TableIdeas, ForeignKeyColumn: "id"},
			{Name: "user_id", Type: "VARCHAR(255)", ForeignKeyTable: types.TableUsers, ForeignKeyColumn: "id"},
			{Name: "content", Type: "TEXT"},
		},
	},
	{
		Name:   types.TableLikes,
		Entity: "Like",
		Columns: []types.SchemaColumn{
			{Name: "id", Type: "INTEGER", IsPrimary: true, IsAutoIncrement: true},
			{Name: "idea_id", Type: "INTEGER", ForeignKeyTable: types.TableIdeas, ForeignKeyColumn: "id"},
			{Name: "user_id", Type: "VARCHAR(255)", ForeignKeyTable: types.TableUsers, ForeignKeyColumn: "id"},
		},
		Indexes: []types.SchemaIndex{
			{Name: "likes_idea_user_key", Table: types.TableLikes, Columns: []string{"idea_id", "user_id"}, Unique: true},
		},
	},
}

// NewCatalogueGraph builds the dependency graph of the given tables.
func NewCatalogueGraph(tables []types.SchemaTable) (*DependencyGraph, error) {
	g := NewDependencyGraph()
	for _, t := range tables {
		g.AddTable(t)
	}
	if _, err := g.BuildCreationOrder(); err != nil {
		return nil, err
	}
	return g, nil
}

// ResolveTable accepts a table name, an entity name or the console's
// single-letter key, case-insensitively.
func ResolveTable(tables []types.SchemaTable, name string) (string, error) {
	key := strings.TrimSpace(name)
	for _, t := range tables {
		switch {
		case strings.EqualFold(key, t.Name),
			strings.EqualFold(key, t.Entity),
			len(key) == 1 && strings.EqualFold(key, t.Entity[:1]):
			return t.Name, nil
		}
	}
	return "", fmt.Errorf("%w: unknown table %q", types.ErrInvalidArgument, name)
}
