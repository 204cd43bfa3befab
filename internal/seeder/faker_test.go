package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSizes(t *testing.T) {
	data := NewDataGenerator(42).Generate(GenerateConfig{
		Users:           4,
		IdeasPerUser:    2,
		CommentsPerIdea: 3,
		LikesPerIdea:    10,
	})

	assert.Len(t, data.Users, 4)
	assert.Len(t, data.Ideas, 8)
	assert.Len(t, data.Comments, 24)
	// Likes are capped at one per user per idea.
	assert.Len(t, data.Likes, 32)
}

func TestGenerateReferencesStayInBatch(t *testing.T) {
	data := NewDataGenerator(7).Generate(GenerateConfig{Users: 3, IdeasPerUser: 2, CommentsPerIdea: 1, LikesPerIdea: 2})

	users := make(map[string]bool)
	emails := make(map[string]bool)
	for _, u := range data.Users {
		require.NotEmpty(t, u.ID)
		users[u.ID] = true
		assert.False(t, emails[u.Email], "duplicate email %s", u.Email)
		emails[u.Email] = true
	}

	ideas := make(map[int64]bool)
	for _, i := range data.Ideas {
		ideas[i.ID] = true
		assert.True(t, users[i.UserID])
	}
	for _, c := range data.Comments {
		assert.True(t, ideas[c.IdeaID])
		assert.True(t, users[c.UserID])
	}

	type pair struct {
		idea int64
		user string
	}
	seen := make(map[pair]bool)
	for _, l := range data.Likes {
		p := pair{l.IdeaID, l.UserID}
		assert.False(t, seen[p], "duplicate like %v", p)
		seen[p] = true
	}
}

func TestGenerateWithoutUsers(t *testing.T) {
	data := NewDataGenerator(1).Generate(GenerateConfig{IdeasPerUser: 3})
	assert.Equal(t, 0, data.Size())
}
