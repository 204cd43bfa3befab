package seeder

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/knights/internal/database"
	"github.com/Lumos-Labs-HQ/knights/internal/schema"
	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// tableLoader inserts the records of one table from a batch.
type tableLoader struct {
	count  func(data *types.SeedData) int
	insert func(ctx context.Context, data *types.SeedData, i int, st *loadState) error
}

// loadState tracks the placeholders a batch declares and the ids the store
// assigned to the ones inserted so far.
type loadState struct {
	report *types.LoadReport
	users  map[string]bool
	ideas  map[int64]bool
}

func newLoadState(data *types.SeedData, report *types.LoadReport) *loadState {
	st := &loadState{
		report: report,
		users:  make(map[string]bool, len(data.Users)),
		ideas:  make(map[int64]bool, len(data.Ideas)),
	}
	for _, u := range data.Users {
		if u.ID != "" {
			st.users[u.ID] = true
		}
	}
	for _, i := range data.Ideas {
		if i.ID != 0 {
			st.ideas[i.ID] = true
		}
	}
	return st
}

// ideaRef maps a placeholder to the inserted idea. A placeholder of the batch
// whose record was not inserted is an error; ids the batch never declared
// pass through.
func (st *loadState) ideaRef(ref int64) (int64, error) {
	if id, ok := st.report.IdeaIDs[ref]; ok {
		return id, nil
	}
	if st.ideas[ref] {
		return 0, fmt.Errorf("%w: idea %d of the batch was not inserted", types.ErrIntegrity, ref)
	}
	return ref, nil
}

func (st *loadState) userRef(ref string) (string, error) {
	if id, ok := st.report.UserIDs[ref]; ok {
		return id, nil
	}
	if st.users[ref] {
		return "", fmt.Errorf("%w: user %s of the batch was not inserted", types.ErrIntegrity, ref)
	}
	return ref, nil
}

type Seeder struct {
	adapter database.DatabaseAdapter
	graph   *schema.DependencyGraph
	loaders map[string]tableLoader
	log     logrus.FieldLogger
}

func NewSeeder(adapter database.DatabaseAdapter, graph *schema.DependencyGraph, log logrus.FieldLogger) *Seeder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Seeder{
		adapter: adapter,
		graph:   graph,
		log:     log.WithField("component", "seeder"),
	}
	s.loaders = map[string]tableLoader{
		types.TableUsers: {
			count:  func(d *types.SeedData) int { return len(d.Users) },
			insert: s.insertUser,
		},
		types.TableIdeas: {
			count:  func(d *types.SeedData) int { return len(d.Ideas) },
			insert: s.insertIdea,
		},
		types.TableComments: {
			count:  func(d *types.SeedData) int { return len(d.Comments) },
			insert: s.insertComment,
		},
		types.TableLikes: {
			count:  func(d *types.SeedData) int { return len(d.Likes) },
			insert: s.insertLike,
		},
	}
	return s
}

// LoadSeed inserts the batch table by table in creation order so every
// foreign key resolves at insert time. Ids assigned by the store replace
// the placeholder ids of the batch, and later records referencing a
// placeholder are rewritten before they are inserted. A reference to a
// batch record that failed to insert fails too. References that do not
// match a record of the batch are passed through unchanged.
//
// Nothing is rolled back: on failure the records inserted so far stay
// committed and the report says how many of each table made it.
func (s *Seeder) LoadSeed(ctx context.Context, data types.SeedData, opts LoadOptions) (types.LoadReport, error) {
	report := types.NewLoadReport()

	order, err := s.graph.CreationOrder()
	if err != nil {
		return report, fmt.Errorf("failed to build insertion order: %w", err)
	}
	report.Order = order
	s.log.WithField("order", strings.Join(order, " -> ")).Debugf("loading %d records", data.Size())

	st := newLoadState(&data, &report)

	var firstErr error
	for _, table := range order {
		loader, ok := s.loaders[table]
		if !ok {
			continue
		}

		for i := 0; i < loader.count(&data); i++ {
			if err := loader.insert(ctx, &data, i, st); err != nil {
				report.Failed[table]++
				s.log.WithFields(logrus.Fields{"table": table, "record": i}).WithError(err).Warn("insert failed")
				if firstErr == nil {
					firstErr = fmt.Errorf("failed to insert %s record %d: %w", table, i, err)
				}
				if !opts.ContinueOnError {
					return report, firstErr
				}
				continue
			}
			report.Inserted[table]++
		}
	}

	return report, firstErr
}

func (s *Seeder) insertUser(ctx context.Context, data *types.SeedData, i int, st *loadState) error {
	user := data.Users[i]
	placeholder := user.ID
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	id, err := s.adapter.InsertUser(ctx, user)
	if err != nil {
		return err
	}
	if placeholder != "" {
		st.report.UserIDs[placeholder] = id
	}
	return nil
}

func (s *Seeder) insertIdea(ctx context.Context, data *types.SeedData, i int, st *loadState) error {
	idea := data.Ideas[i]
	var err error
	if idea.UserID, err = st.userRef(idea.UserID); err != nil {
		return err
	}

	id, err := s.adapter.InsertIdea(ctx, idea)
	if err != nil {
		return err
	}
	if idea.ID != 0 {
		st.report.IdeaIDs[idea.ID] = id
	}
	return nil
}

func (s *Seeder) insertComment(ctx context.Context, data *types.SeedData, i int, st *loadState) error {
	comment := data.Comments[i]
	var err error
	if comment.IdeaID, err = st.ideaRef(comment.IdeaID); err != nil {
		return err
	}
	if comment.UserID, err = st.userRef(comment.UserID); err != nil {
		return err
	}

	id, err := s.adapter.InsertComment(ctx, comment)
	if err != nil {
		return err
	}
	if comment.ID != 0 {
		st.report.CommentIDs[comment.ID] = id
	}
	return nil
}

func (s *Seeder) insertLike(ctx context.Context, data *types.SeedData, i int, st *loadState) error {
	like := data.Likes[i]
	var err error
	if like.IdeaID, err = st.ideaRef(like.IdeaID); err != nil {
		return err
	}
	if like.UserID, err = st.userRef(like.UserID); err != nil {
		return err
	}

	id, err := s.adapter.InsertLike(ctx, like)
	if err != nil {
		return err
	}
	if like.ID != 0 {
		st.report.LikeIDs[like.ID] = id
	}
	return nil
}
