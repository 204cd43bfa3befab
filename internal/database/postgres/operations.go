package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/knights/internal/database/common"
	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

func (p *Adapter) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	query, args, err := p.qb.Select("COUNT(*)").
		From("information_schema.tables").
		Where("table_schema = current_schema()").
		Where(squirrel.Eq{"table_name": tableName}).
		ToSql()
	if err != nil {
		return false, err
	}

	var count int64
	if err := p.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, classify("look up", tableName, err)
	}
	return count > 0, nil
}

func (p *Adapter) CreateTable(ctx context.Context, table types.SchemaTable) error {
	script := p.GenerateCreateTableSQL(table)
	for _, index := range table.Indexes {
		script += "\n" + p.GenerateAddIndexSQL(index)
	}
	for _, stmt := range common.ParseSQLStatements(script) {
		if _, err := p.exec(ctx, "create table", table.Name, stmt); err != nil {
			return err
		}
	}
	return nil
}

// DropTable never cascades: a table that is still referenced fails with
// 2BP01, which surfaces as an integrity error.
func (p *Adapter) DropTable(ctx context.Context, tableName string) error {
	_, err := p.exec(ctx, "drop table", tableName, fmt.Sprintf("DROP TABLE IF EXISTS %s", pq.QuoteIdentifier(tableName)))
	return err
}

func (p *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	var lines []string
	var foreignKeys []string

	for _, column := range table.Columns {
		if column.ForeignKeyTable != "" && column.ForeignKeyColumn != "" {
			foreignKeys = append(foreignKeys, fmt.Sprintf("  FOREIGN KEY (%s) REFERENCES %s(%s)",
				pq.QuoteIdentifier(column.Name), pq.QuoteIdentifier(column.ForeignKeyTable), pq.QuoteIdentifier(column.ForeignKeyColumn)))
		}
	}

	lines = append(lines, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (", pq.QuoteIdentifier(table.Name)))

	for i, column := range table.Columns {
		comma := ","
		if i == len(table.Columns)-1 && len(foreignKeys) == 0 {
			comma = ""
		}
		lines = append(lines, fmt.Sprintf("  %s %s%s", pq.QuoteIdentifier(column.Name), p.FormatColumnType(column), comma))
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

func (p *Adapter) GenerateAddIndexSQL(index types.SchemaIndex) string {
	unique := ""
	if index.Unique {
		unique = "UNIQUE "
	}
	quoted := make([]string, len(index.Columns))
	for i, col := range index.Columns {
		quoted[i] = pq.QuoteIdentifier(col)
	}
	return fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s (%s);",
		unique, pq.QuoteIdentifier(index.Name), pq.QuoteIdentifier(index.Table), strings.Join(quoted, ", "))
}

func (p *Adapter) FormatColumnType(column types.SchemaColumn) string {
	if column.IsAutoIncrement {
		return "SERIAL PRIMARY KEY"
	}

	parts := []string{column.Type}

	if column.IsPrimary {
		parts = append(parts, "PRIMARY KEY")
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
