package schema

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/knights/internal/database"
	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/sirupsen/logrus"
)

// Manager creates and drops the catalogue tables in an order that never
// leaves a foreign key pointing at a missing table.
type Manager struct {
	adapter database.DatabaseAdapter
	graph   *DependencyGraph
	tables  []types.SchemaTable
	log     logrus.FieldLogger
}

func NewManager(adapter database.DatabaseAdapter, tables []types.SchemaTable, log logrus.FieldLogger) (*Manager, error) {
	graph, err := NewCatalogueGraph(tables)
	if err != nil {
		return nil, fmt.Errorf("failed to build table graph: %w", err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{
		adapter: adapter,
		graph:   graph,
		tables:  tables,
		log:     log.WithField("component", "schema"),
	}, nil
}

// Resolve maps a user supplied table reference to a catalogue table name.
func (m *Manager) Resolve(name string) (string, error) {
	return ResolveTable(m.tables, name)
}

func (m *Manager) Graph() *DependencyGraph {
	return m.graph
}

// CreateTable reports true when the table was created and false when it
// already existed. A table whose referenced tables are missing is refused.
func (m *Manager) CreateTable(ctx context.Context, name string) (bool, error) {
	tableName, err := m.Resolve(name)
	if err != nil {
		return false, err
	}

	exists, err := m.adapter.CheckTableExists(ctx, tableName)
	if err != nil {
		return false, err
	}
	if exists {
		m.log.WithField("table", tableName).Debug("table already exists")
		return false, nil
	}

	for _, ref := range m.graph.References(tableName) {
		refExists, err := m.adapter.CheckTableExists(ctx, ref)
		if err != nil {
			return false, err
		}
		if !refExists {
			return false, fmt.Errorf("%w: table %s references missing table %s", types.ErrIntegrity, tableName, ref)
		}
	}

	table, _ := m.graph.Table(tableName)
	if err := m.adapter.CreateTable(ctx, table); err != nil {
		return false, err
	}
	m.log.WithField("table", tableName).Debug("table created")
	return true, nil
}

func (m *Manager) CreateAll(ctx context.Context) ([]types.TableResult, error) {
	order, err := m.graph.CreationOrder()
	if err != nil {
		return nil, err
	}
	return m.apply(ctx, order, m.CreateTable)
}

// DropTable reports true when the table was dropped and false when it was
// already absent. A table is refused while any table that references it
// still exists, whether or not that table holds rows.
func (m *Manager) DropTable(ctx context.Context, name string) (bool, error) {
	tableName, err := m.Resolve(name)
	if err != nil {
		return false, err
	}

	exists, err := m.adapter.CheckTableExists(ctx, tableName)
	if err != nil {
		return false, err
	}
	if !exists {
		m.log.WithField("table", tableName).Debug("table already absent")
		return false, nil
	}

	for _, referrer := range m.graph.Referrers(tableName) {
		referrerExists, err := m.adapter.CheckTableExists(ctx, referrer)
		if err != nil {
			return false, err
		}
		if referrerExists {
			return false, fmt.Errorf("%w: table %s is referenced by %s", types.ErrIntegrity, tableName, referrer)
		}
	}

	if err := m.adapter.DropTable(ctx, tableName); err != nil {
		return false, err
	}
	m.log.WithField("table", tableName).Debug("table dropped")
	return true, nil
}

func (m *Manager) DropAll(ctx context.Context) ([]types.TableResult, error) {
	order, err := m.graph.DropOrder()
	if err != nil {
		return nil, err
	}
	return m.apply(ctx, order, m.DropTable)
}

// DropCascade drops every table that references root, then root itself.
// Tables root depends on are left alone.
func (m *Manager) DropCascade(ctx context.Context, root string) ([]types.TableResult, error) {
	tableName, err := m.Resolve(root)
	if err != nil {
		return nil, err
	}
	dependents, err := m.graph.Dependents(tableName)
	if err != nil {
		return nil, err
	}
	m.log.WithFields(logrus.Fields{"table": tableName, "dependents": dependents}).Debug("cascading drop")
	return m.apply(ctx, append(dependents, tableName), m.DropTable)
}

// Status reports which catalogue tables exist, in creation order.
func (m *Manager) Status(ctx context.Context) ([]types.TableStatus, error) {
	order, err := m.graph.CreationOrder()
	if err != nil {
		return nil, err
	}
	statuses := make([]types.TableStatus, 0, len(order))
	for _, name := range order {
		exists, err := m.adapter.CheckTableExists(ctx, name)
		if err != nil {
			return statuses, err
		}
		statuses = append(statuses, types.TableStatus{Table: name, Exists: exists})
	}
	return statuses, nil
}

// apply stops at the first failure and returns the results gathered so far.
func (m *Manager) apply(ctx context.Context, order []string, op func(context.Context, string) (bool, error)) ([]types.TableResult, error) {
	results := make([]types.TableResult, 0, len(order))
	for _, name := range order {
		changed, err := op(ctx, name)
		if err != nil {
			return results, err
		}
		results = append(results, types.TableResult{Table: name, Changed: changed})
	}
	return results, nil
}
