package types

import (
	"fmt"
	"strings"
)

// Validity is the soft-delete flag carried by users and ideas.
type Validity bool

const (
	Valid   Validity = true
	Invalid Validity = false
)

func (v Validity) String() string {
	if v {
		return "Valid"
	}
	return "INVALID"
}

// Tables of the admin schema.
const (
	TableUsers    = "users"
	TableIdeas    = "ideas"
	TableComments = "comments"
	TableLikes    = "likes"
)

// Directives accepted from the console when toggling validity.
const (
	DirectiveInvalidate = "Invalidate"
	DirectiveRestore    = "Restore"
)

// ParseValidity maps an admin directive onto the target state.
func ParseValidity(directive string) (Validity, error) {
	switch {
	case strings.EqualFold(strings.TrimSpace(directive), DirectiveInvalidate):
		return Invalid, nil
	case strings.EqualFold(strings.TrimSpace(directive), DirectiveRestore):
		return Valid, nil
	default:
		return Valid, fmt.Errorf("%w: validity directive %q (want %s or %s)",
			ErrInvalidArgument, directive, DirectiveInvalidate, DirectiveRestore)
	}
}

type User struct {
	ID                string `json:"id" yaml:"id"`
	Username          string `json:"username" yaml:"username"`
	Email             string `json:"email" yaml:"email"`
	GenderIdentity    string `json:"gender_identity" yaml:"gender_identity"`
	SexualOrientation string `json:"sexual_orientation" yaml:"sexual_orientation"`
	Note              string `json:"note" yaml:"note"`
	Valid             bool   `json:"valid" yaml:"valid"`
}

// Idea.LikeCount is derived from the likes table on every read and is never
// written back to storage.
type Idea struct {
	ID        int64  `json:"id" yaml:"id"`
	UserID    string `json:"user_id" yaml:"user_id"`
	Content   string `json:"content" yaml:"content"`
	LikeCount int64  `json:"like_count" yaml:"like_count"`
	Valid     bool   `json:"valid" yaml:"valid"`
}

type Comment struct {
	ID      int64  `json:"id" yaml:"id"`
	IdeaID  int64  `json:"idea_id" yaml:"idea_id"`
	UserID  string `json:"user_id" yaml:"user_id"`
	Content string `json:"content" yaml:"content"`
}

type Like struct {
	ID     int64  `json:"id" yaml:"id"`
	IdeaID int64  `json:"idea_id" yaml:"idea_id"`
	UserID string `json:"user_id" yaml:"user_id"`
}

// SeedData is a batch of records already partitioned by entity type.
// Ids in the batch are placeholders used for references inside the batch.
type SeedData struct {
	Users    []User    `json:"users" yaml:"users"`
	Ideas    []Idea    `json:"ideas" yaml:"ideas"`
	Comments []Comment `json:"comments" yaml:"comments"`
	Likes    []Like    `json:"likes" yaml:"likes"`
}

// Size returns the number of records in the batch.
func (d SeedData) Size() int {
	return len(d.Users) + len(d.Ideas) + len(d.Comments) + len(d.Likes)
}

type SchemaTable struct {
	Name    string
	Entity  string
	Columns []SchemaColumn
	Indexes []SchemaIndex
}

type SchemaColumn struct {
	Name             string
	Type             string
	Nullable         bool
	Default          string
	IsPrimary        bool
	IsUnique         bool
	IsAutoIncrement  bool
	ForeignKeyTable  string
	ForeignKeyColumn string
}

type SchemaIndex struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
}

// References returns the tables this table points at through foreign keys,
// in column order and without duplicates.
func (t SchemaTable) References() []string {
	var refs []string
	seen := make(map[string]bool)
	for _, col := range t.Columns {
		if col.ForeignKeyTable == "" || col.ForeignKeyTable == t.Name || seen[col.ForeignKeyTable] {
			continue
		}
		seen[col.ForeignKeyTable] = true
		refs = append(refs, col.ForeignKeyTable)
	}
	return refs
}

// TableResult reports the outcome of a schema operation on one table.
// Changed is false for idempotent no-ops (already existed / already absent).
type TableResult struct {
	Table   string `json:"table"`
	Changed bool   `json:"changed"`
}

type TableStatus struct {
	Table  string `json:"table"`
	Exists bool   `json:"exists"`
}

// LoadReport summarises a bulk load. Counts are per table; the id maps go
// from the placeholder id in the batch to the id the store assigned.
type LoadReport struct {
	Order      []string          `json:"order"`
	Inserted   map[string]int    `json:"inserted"`
	Failed     map[string]int    `json:"failed"`
	UserIDs    map[string]string `json:"user_ids"`
	IdeaIDs    map[int64]int64   `json:"idea_ids"`
	CommentIDs map[int64]int64   `json:"comment_ids"`
	LikeIDs    map[int64]int64   `json:"like_ids"`
}

func NewLoadReport() LoadReport {
	return LoadReport{
		Inserted:   make(map[string]int),
		Failed:     make(map[string]int),
		UserIDs:    make(map[string]string),
		IdeaIDs:    make(map[int64]int64),
		CommentIDs: make(map[int64]int64),
		LikeIDs:    make(map[int64]int64),
	}
}

// Total returns the number of records inserted across all tables.
func (r LoadReport) Total() int {
	total := 0
	for _, n := range r.Inserted {
		total += n
	}
	return total
}
