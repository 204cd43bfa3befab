package seeder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonSeed = `{
  "users": [{"id": "u1", "username": "ada", "email": "ada@example.com", "note": "hi"}],
  "ideas": [{"id": 1, "user_id": "u1", "content": "idea"}],
  "comments": [{"id": 1, "idea_id": 1, "user_id": "u1", "content": "comment"}],
  "likes": [{"id": 1, "idea_id": 1, "user_id": "u1"}]
}`

const yamlSeed = `users:
  - id: u1
    username: ada
    email: ada@example.com
    note: hi
ideas:
  - id: 1
    user_id: u1
    content: idea
comments:
  - id: 1
    idea_id: 1
    user_id: u1
    content: comment
likes:
  - id: 1
    idea_id: 1
    user_id: u1
`

func writeSeed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadSeedFileFormatsAgree(t *testing.T) {
	fromJSON, err := ReadSeedFile(writeSeed(t, "seed.json", jsonSeed))
	require.NoError(t, err)

	fromYAML, err := ReadSeedFile(writeSeed(t, "seed.yml", yamlSeed))
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	assert.Equal(t, 4, fromJSON.Size())
	assert.Equal(t, "hi", fromJSON.Users[0].Note)
	assert.Equal(t, int64(1), fromJSON.Likes[0].IdeaID)
}

func TestReadSeedFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "unsupported extension", file: "seed.csv", content: "id,name"},
		{name: "malformed json", file: "seed.json", content: `{"users": [`},
		{name: "unknown json key", file: "seed.json", content: `{"sampleUsers": []}`},
		{name: "unknown yaml key", file: "seed.yaml", content: "posts: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSeedFile(writeSeed(t, tt.file, tt.content))
			assert.ErrorIs(t, err, types.ErrInvalidArgument)
		})
	}
}

func TestReadSeedFileMissing(t *testing.T) {
	_, err := ReadSeedFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrInvalidArgument)
}

func TestDecodeEmptyYAML(t *testing.T) {
	data, err := DecodeSeed(strings.NewReader(""), "yaml")
	require.NoError(t, err)
	assert.Equal(t, 0, data.Size())
}

func TestSampleData(t *testing.T) {
	data, err := SampleData()
	require.NoError(t, err)

	assert.Len(t, data.Users, 2)
	assert.Len(t, data.Ideas, 3)
	assert.Len(t, data.Comments, 1)
	assert.Len(t, data.Likes, 1)

	users := make(map[string]bool)
	for _, u := range data.Users {
		users[u.ID] = true
	}
	for _, i := range data.Ideas {
		assert.True(t, users[i.UserID], "idea %d references unknown user", i.ID)
	}
}
