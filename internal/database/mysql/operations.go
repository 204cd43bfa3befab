package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/knights/internal/types"
)

func (m *Adapter) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	query, args, err := m.qb.Select("COUNT(*)").
		From("information_schema.tables").
		Where("table_schema = DATABASE()").
		Where("table_name = ?", tableName).
		ToSql()
	if err != nil {
		return false, err
	}

	var count int
	if err := m.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, classify("look up", tableName, err)
	}
	return count > 0, nil
}

// CreateTable runs a single statement: MySQL has no CREATE INDEX IF NOT
// EXISTS, so indexes are declared inside the table definition.
func (m *Adapter) CreateTable(ctx context.Context, table types.SchemaTable) error {
	return m.ExecScript(ctx, "create table", table.Name, m.GenerateCreateTableSQL(table))
}

func (m *Adapter) DropTable(ctx context.Context, tableName string) error {
	_, err := m.DB.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS `%s`", tableName))
	return classify("drop table", tableName, err)
}

func (m *Adapter) ListIdeas(ctx context.Context) ([]types.Idea, error) {
	withLikes, err := m.CheckTableExists(ctx, types.TableLikes)
	if err != nil {
		return nil, err
	}
	return m.QueryIdeas(ctx, withLikes)
}

func (m *Adapter) GenerateCreateTableSQL(table types.SchemaTable) string {
	var lines []string
	var constraints []string

	for _, index := range table.Indexes {
		kind := "KEY"
		if index.Unique {
			kind = "UNIQUE KEY"
		}
		constraints = append(constraints, fmt.Sprintf("  %s `%s` (%s)", kind, index.Name, quoteColumns(index.Columns)))
	}

	for _, column := range table.Columns {
		if column.ForeignKeyTable != "" && column.ForeignKeyColumn != "" {
			constraints = append(constraints, fmt.Sprintf("  FOREIGN KEY (`%s`) REFERENCES `%s`(`%s`)",
				column.Name, column.ForeignKeyTable, column.ForeignKeyColumn))
		}
	}

	lines = append(lines, fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` (", table.Name))

	for i, column := range table.Columns {
		comma := ","
		if i == len(table.Columns)-1 && len(constraints) == 0 {
			comma = ""
		}
		lines = append(lines, fmt.Sprintf("  `%s` %s%s", column.Name, m.FormatColumnType(column), comma))
	}

	for i, c := range constraints {
		comma := ","
		if i == len(constraints)-1 {
			comma = ""
		}
		lines = append(lines, fmt.Sprintf("%s%s", c, comma))
	}

	lines = append(lines, ") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;")
	return strings.Join(lines, "\n")
}

func (m *Adapter) FormatColumnType(column types.SchemaColumn) string {
	columnType := column.Type
	if column.IsAutoIncrement || strings.EqualFold(columnType, "INTEGER") {
		columnType = "INT"
	}
	parts := []string{columnType}

	if column.IsPrimary {
		parts = append(parts, "PRIMARY KEY")
		if column.IsAutoIncrement {
			parts = append(parts, "AUTO_INCREMENT")
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

func quoteColumns(columns []string) string {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = fmt.Sprintf("`%s`", col)
	}
	return strings.Join(quoted, ", ")
}
