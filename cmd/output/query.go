package output

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/Lumos-Labs-HQ/knights/internal/validity"
)

// Query lists every row of a resolved table and renders it.
func Query(ctx context.Context, v *validity.Engine, table string) (string, error) {
	switch table {
	case types.TableUsers:
		users, err := v.ListUsers(ctx)
		if err != nil {
			return "", err
		}
		return Users(users), nil
	case types.TableIdeas:
		ideas, err := v.ListIdeas(ctx)
		if err != nil {
			return "", err
		}
		return Ideas(ideas), nil
	case types.TableComments:
		comments, err := v.ListComments(ctx)
		if err != nil {
			return "", err
		}
		return Comments(comments), nil
	case types.TableLikes:
		likes, err := v.ListLikes(ctx)
		if err != nil {
			return "", err
		}
		return Likes(likes), nil
	}
	return "", fmt.Errorf("%w: unknown table %q", types.ErrInvalidArgument, table)
}
