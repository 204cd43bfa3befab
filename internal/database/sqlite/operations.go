package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/knights/internal/types"
)

func (s *Adapter) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	query, args, err := s.qb.Select("COUNT(*)").
		From("sqlite_master").
		Where("type = 'table'").
		Where("name = ?", tableName).
		ToSql()
	if err != nil {
		return false, err
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, classify("look up", tableName, err)
	}
	return count > 0, nil
}

func (s *Adapter) CreateTable(ctx context.Context, table types.SchemaTable) error {
	statements := []string{s.GenerateCreateTableSQL(table)}
	for _, index := range table.Indexes {
		statements = append(statements, s.GenerateAddIndexSQL(index))
	}
	return s.ExecScript(ctx, "create table", table.Name, strings.Join(statements, "\n"))
}

func (s *Adapter) DropTable(ctx context.Context, tableName string) error {
	_, err := s.DB.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS \"%s\"", tableName))
	return classify("drop table", tableName, err)
}

func (s *Adapter) ListIdeas(ctx context.Context) ([]types.Idea, error) {
	withLikes, err := s.CheckTableExists(ctx, types.TableLikes)
	if err != nil {
		return nil, err
	}
	return s.QueryIdeas(ctx, withLikes)
}

func (s *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	var lines []string
	var foreignKeys []string

	for _, column := range table.Columns {
		if column.ForeignKeyTable != "" && column.ForeignKeyColumn != "" {
			foreignKeys = append(foreignKeys, fmt.Sprintf("  FOREIGN KEY (\"%s\") REFERENCES \"%s\"(\"%s\")",
				column.Name, column.ForeignKeyTable, column.ForeignKeyColumn))
		}
	}

	lines = append(lines, fmt.Sprintf("CREATE TABLE IF NOT EXISTS \"%s\" (", table.Name))

	for i, column := range table.Columns {
		comma := ","
		if i == len(table.Columns)-1 && len(foreignKeys) == 0 {
			comma = ""
		}
		lines = append(lines, fmt.Sprintf("  \"%s\" %s%s", column.Name, s.FormatColumnType(column), comma))
	}

	for i, fk := range foreignKeys {
		comma := ","
		if i == len(foreignKeys)-1 {
			comma = ""
		}
		lines = append(lines, fmt.Sprintf("%s%s", fk, comma))
	}

	lines = append(lines, ");")
	return strings.Join(lines, "\n")
}

func (s *Adapter) GenerateAddIndexSQL(index types.SchemaIndex) string {
	unique := ""
	if index.Unique {
		unique = "UNIQUE "
	}
	columns := make([]string, len(index.Columns))
	for i, col := range index.Columns {
		columns[i] = fmt.Sprintf("\"%s\"", col)
	}
	return fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS \"%s\" ON \"%s\" (%s);",
		unique, index.Name, index.Table, strings.Join(columns, ", "))
}

// FormatColumnType renders a column for SQLite. Auto-increment keys must be
// declared exactly INTEGER PRIMARY KEY to alias the rowid.
func (s *Adapter) FormatColumnType(column types.SchemaColumn) string {
	parts := []string{column.Type}

	if column.IsPrimary {
		if column.IsAutoIncrement {
			parts = []string{"INTEGER", "PRIMARY KEY AUTOINCREMENT"}
		} else {
			parts = append(parts, "PRIMARY KEY")
		}
	}

	if column.IsUnique && !column.IsPrimary {
		parts = append(parts, "UNIQUE")
	}

	if !column.Nullable && !column.IsPrimary {
		parts = append(parts, "NOT NULL")
	}

	if column.Default != "" {
		parts = append(parts, fmt.Sprintf("DEFAULT %s", column.Default))
	}

	return strings.Join(parts, " ")
}
