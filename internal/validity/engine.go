// Package validity toggles the soft-delete flag of users and ideas and lists
// rows with that flag visible. Rows are never filtered or hard-deleted.
package validity

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Lumos-Labs-HQ/knights/internal/database"
	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/sirupsen/logrus"
)

type Engine struct {
	adapter database.DatabaseAdapter
	log     logrus.FieldLogger
}

func NewEngine(adapter database.DatabaseAdapter, log logrus.FieldLogger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{adapter: adapter, log: log.WithField("component", "validity")}
}

// SetUserValidity returns 1 when the user exists and 0 when it does not.
// Setting the state an entity already has still counts it.
func (e *Engine) SetUserValidity(ctx context.Context, id string, v types.Validity) (int64, error) {
	if strings.TrimSpace(id) == "" {
		return 0, fmt.Errorf("%w: empty user id", types.ErrInvalidArgument)
	}
	n, err := e.adapter.SetUserValidity(ctx, id, bool(v))
	if err != nil {
		return 0, err
	}
	e.log.WithFields(logrus.Fields{"user": id, "state": v.String(), "matched": n}).Debug("user validity set")
	return n, nil
}

// SetIdeaValidity rejects an id that is not an integer before touching
// storage.
func (e *Engine) SetIdeaValidity(ctx context.Context, id string, v types.Validity) (int64, error) {
	ideaID, err := ParseIdeaID(id)
	if err != nil {
		return 0, err
	}
	n, err := e.adapter.SetIdeaValidity(ctx, ideaID, bool(v))
	if err != nil {
		return 0, err
	}
	e.log.WithFields(logrus.Fields{"idea": ideaID, "state": v.String(), "matched": n}).Debug("idea validity set")
	return n, nil
}

// Set dispatches on a resolved table name. Only users and ideas carry a
// validity flag.
func (e *Engine) Set(ctx context.Context, table, id string, v types.Validity) (int64, error) {
	if err := CheckID(table, id); err != nil {
		return 0, err
	}
	switch table {
	case types.TableUsers:
		return e.SetUserValidity(ctx, id, v)
	case types.TableIdeas:
		return e.SetIdeaValidity(ctx, id, v)
	default:
		return 0, fmt.Errorf("%w: %s has no validity flag", types.ErrInvalidArgument, table)
	}
}

func (e *Engine) ListUsers(ctx context.Context) ([]types.User, error) {
	return e.adapter.ListUsers(ctx)
}

// ListIdeas includes the like count of every idea.
func (e *Engine) ListIdeas(ctx context.Context) ([]types.Idea, error) {
	return e.adapter.ListIdeas(ctx)
}

func (e *Engine) ListComments(ctx context.Context) ([]types.Comment, error) {
	return e.adapter.ListComments(ctx)
}

func (e *Engine) ListLikes(ctx context.Context) ([]types.Like, error) {
	return e.adapter.ListLikes(ctx)
}

// CheckID validates an id for a validity change on table without touching
// storage.
func CheckID(table, id string) error {
	switch table {
	case types.TableUsers:
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: empty user id", types.ErrInvalidArgument)
		}
		return nil
	case types.TableIdeas:
		_, err := ParseIdeaID(id)
		return err
	default:
		return fmt.Errorf("%w: %s has no validity flag", types.ErrInvalidArgument, table)
	}
}

func ParseIdeaID(id string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: idea id %q is not a number", types.ErrInvalidArgument, id)
	}
	return n, nil
}
