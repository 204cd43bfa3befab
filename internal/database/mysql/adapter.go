package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/knights/internal/database/common"
	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
)

type Adapter struct {
	*common.SQLStore
	qb        squirrel.StatementBuilderType
	currentDB string
}

// MySQL error numbers that mean a constraint refused the statement.
var integrityErrors = map[uint16]bool{
	1048: true, // column cannot be null
	1062: true, // duplicate entry
	1216: true, // cannot add child row (legacy)
	1217: true, // cannot delete parent row (legacy)
	1451: true, // cannot delete or update a parent row
	1452: true, // cannot add or update a child row
	3730: true, // cannot drop table referenced by a foreign key
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

func (m *Adapter) Connect(ctx context.Context, url string) error {
	dsn := url
	if strings.HasPrefix(url, "mysql://") {
		dsn = strings.TrimPrefix(url, "mysql://")

		atIndex := strings.Index(dsn, "@")
		if atIndex > 0 {
			credentials := dsn[:atIndex]
			remainder := dsn[atIndex+1:]

			slashIndex := strings.Index(remainder, "/")
			if slashIndex > 0 {
				hostPort := remainder[:slashIndex]
				dbAndParams := remainder[slashIndex+1:]

				dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=require", "tls=skip-verify")
				dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=disable", "tls=false")
				dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=verify-full", "tls=true")

				dsn = fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
			}
		}
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return types.NewStoreError(types.ErrConnection, "parse DSN", "", err)
	}
	// Report matched rather than changed rows so a validity update that
	// sets the current value still counts the row it found.
	cfg.ClientFoundRows = true
	cfg.ParseTime = true
	m.currentDB = cfg.DBName

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return types.NewStoreError(types.ErrConnection, "open", m.currentDB, err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return classify("connect to", m.currentDB, err)
	}

	m.DB = db
	return nil
}

func (m *Adapter) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

func (m *Adapter) Ping(ctx context.Context) error {
	if err := m.DB.PingContext(ctx); err != nil {
		return classify("ping", m.currentDB, err)
	}
	return nil
}

func classify(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && integrityErrors[myErr.Number] {
		return types.NewStoreError(types.ErrIntegrity, op, table, err)
	}
	return types.NewStoreError(types.ErrConnection, op, table, err)
}
