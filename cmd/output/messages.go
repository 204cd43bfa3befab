package output

import (
	"errors"
	"fmt"

	"github.com/Lumos-Labs-HQ/knights/internal/types"
)

// Describe turns a core error into the message shown to the operator.
func Describe(err error) string {
	switch {
	case errors.Is(err, types.ErrInvalidArgument):
		return fmt.Sprintf("Invalid input: %v", err)
	case errors.Is(err, types.ErrIntegrity):
		return fmt.Sprintf("Refused by the database (a reference would break): %v", err)
	case errors.Is(err, types.ErrConnection):
		return fmt.Sprintf("Database unavailable: %v", err)
	default:
		return err.Error()
	}
}

// TableResult phrases the outcome of a create or drop on one table.
func TableResult(r types.TableResult, created bool) string {
	switch {
	case created && r.Changed:
		return fmt.Sprintf("Created '%s' table", r.Table)
	case created:
		return fmt.Sprintf("'%s' table already existed", r.Table)
	case r.Changed:
		return fmt.Sprintf("Dropped '%s' table", r.Table)
	default:
		return fmt.Sprintf("'%s' table was already absent", r.Table)
	}
}

// ValidityResult phrases the outcome of a validity change.
func ValidityResult(table, id string, v types.Validity, n int64) string {
	if n == 0 {
		return fmt.Sprintf("No row in %s with id %s", table, id)
	}
	return fmt.Sprintf("%s %s is now %s", table, id, v)
}

// LoadSummary lists per-table insert counts in load order.
func LoadSummary(r types.LoadReport) string {
	s := fmt.Sprintf("Inserted %d record(s)", r.Total())
	for _, t := range r.Order {
		s += fmt.Sprintf("\n  %-9s %d", t, r.Inserted[t])
		if f := r.Failed[t]; f > 0 {
			s += fmt.Sprintf(" (%d failed)", f)
		}
	}
	return s
}
