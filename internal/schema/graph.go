package schema

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/knights/internal/types"
)

// DependencyGraph maps every table to the tables it references.
// Tables are visited in the order they were added, so the resulting
// orders are stable across runs.
type DependencyGraph struct {
	tables map[string]types.SchemaTable
	names  []string
	order  []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		tables: make(map[string]types.SchemaTable),
	}
}

func (g *DependencyGraph) AddTable(table types.SchemaTable) {
	if _, exists := g.tables[table.Name]; !exists {
		g.names = append(g.names, table.Name)
	}
	g.tables[table.Name] = table
	g.order = nil
}

func (g *DependencyGraph) Has(name string) bool {
	_, ok := g.tables[name]
	return ok
}

func (g *DependencyGraph) Table(name string) (types.SchemaTable, bool) {
	t, ok := g.tables[name]
	return t, ok
}

// References returns the direct references of a table.
func (g *DependencyGraph) References(name string) []string {
	return g.tables[name].References()
}

// Referrers returns the tables that reference name directly, in the order
// they were added.
func (g *DependencyGraph) Referrers(name string) []string {
	var referrers []string
	for _, other := range g.names {
		if other == name {
			continue
		}
		for _, ref := range g.References(other) {
			if ref == name {
				referrers = append(referrers, other)
				break
			}
		}
	}
	return referrers
}

// BuildCreationOrder sorts the tables so that every table comes after the
// tables it references.
func (g *DependencyGraph) BuildCreationOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(tableName string) error {
		if temp[tableName] {
			return fmt.Errorf("circular dependency detected involving table: %s", tableName)
		}
		if visited[tableName] {
			return nil
		}

		temp[tableName] = true
		table, ok := g.tables[tableName]
		if !ok {
			return fmt.Errorf("table %s is referenced but not declared", tableName)
		}

		for _, dep := range table.References() {
			if err := visit(dep); err != nil {
				return err
			}
		}

		temp[tableName] = false
		visited[tableName] = true
		order = append(order, tableName)
		return nil
	}

	for _, tableName := range g.names {
		if !visited[tableName] {
			if err := visit(tableName); err != nil {
				return nil, err
			}
		}
	}

	g.order = order
	return order, nil
}

// CreationOrder returns the cached creation order, building it if needed.
func (g *DependencyGraph) CreationOrder() ([]string, error) {
	if g.order != nil {
		return append([]string(nil), g.order...), nil
	}
	order, err := g.BuildCreationOrder()
	if err != nil {
		return nil, err
	}
	return append([]string(nil), order...), nil
}

// DropOrder is the reverse of the creation order.
func (g *DependencyGraph) DropOrder() ([]string, error) {
	order, err := g.CreationOrder()
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}

// Dependents returns every table that references root directly or
// transitively, in drop order. root itself is not included.
func (g *DependencyGraph) Dependents(root string) ([]string, error) {
	dropOrder, err := g.DropOrder()
	if err != nil {
		return nil, err
	}

	reaches := map[string]bool{root: true}
	// Creation order guarantees references are resolved before the tables
	// that hold them, so one forward pass finds the transitive closure.
	creation, _ := g.CreationOrder()
	for _, name := range creation {
		for _, ref := range g.References(name) {
			if reaches[ref] {
				reaches[name] = true
				break
			}
		}
	}

	var dependents []string
	for _, name := range dropOrder {
		if name != root && reaches[name] {
			dependents = append(dependents, name)
		}
	}
	return dependents, nil
}
