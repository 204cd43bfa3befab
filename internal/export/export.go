// Package export writes the current contents of the admin tables to disk in
// a format the seed loader reads back.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Lumos-Labs-HQ/knights/internal/session"
	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// Snapshot reads every existing table. Absent tables are left empty.
// Reads run one after another: the session holds a single connection.
func Snapshot(ctx context.Context, sess *session.Session) (types.SeedData, error) {
	var data types.SeedData

	statuses, err := sess.Schema.Status(ctx)
	if err != nil {
		return data, err
	}

	for _, s := range statuses {
		if !s.Exists {
			continue
		}
		switch s.Table {
		case types.TableUsers:
			data.Users, err = sess.Validity.ListUsers(ctx)
		case types.TableIdeas:
			data.Ideas, err = sess.Validity.ListIdeas(ctx)
		case types.TableComments:
			data.Comments, err = sess.Validity.ListComments(ctx)
		case types.TableLikes:
			data.Likes, err = sess.Validity.ListLikes(ctx)
		}
		if err != nil {
			return data, fmt.Errorf("failed to read %s: %w", s.Table, err)
		}
	}
	return data, nil
}

// Write stores data under dir with a timestamped name and returns the path
// written. CSV produces a directory with one file per non-empty table.
func Write(data types.SeedData, dir, format string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	switch format {
	case FormatJSON, "":
		return writeFile(filepath.Join(dir, fmt.Sprintf("export_%s.json", timestamp)), data, marshalJSON)
	case FormatYAML:
		return writeFile(filepath.Join(dir, fmt.Sprintf("export_%s.yaml", timestamp)), data, yaml.Marshal)
	case FormatCSV:
		return writeCSV(filepath.Join(dir, fmt.Sprintf("export_%s_csv", timestamp)), data)
	default:
		return "", fmt.Errorf("%w: unsupported export format %q", types.ErrInvalidArgument, format)
	}
}

func marshalJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func writeFile(path string, data types.SeedData, marshal func(interface{}) ([]byte, error)) (string, error) {
	body, err := marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal data: %w", err)
	}
	if err := os.WriteFile(path, body, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

func writeCSV(dir string, data types.SeedData) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create CSV directory: %w", err)
	}

	tables := []struct {
		name    string
		headers []string
		rows    [][]string
	}{
		{types.TableUsers, []string{"id", "username", "email", "gender_identity", "sexual_orientation", "note", "valid"}, userRows(data.Users)},
		{types.TableIdeas, []string{"id", "user_id", "content", "valid", "like_count"}, ideaRows(data.Ideas)},
		{types.TableComments, []string{"id", "idea_id", "user_id", "content"}, commentRows(data.Comments)},
		{types.TableLikes, []string{"id", "idea_id", "user_id"}, likeRows(data.Likes)},
	}

	for _, t := range tables {
		if len(t.rows) == 0 {
			continue
		}
		if err := writeCSVFile(filepath.Join(dir, t.name+".csv"), t.headers, t.rows); err != nil {
			return "", fmt.Errorf("failed to write CSV file for %s: %w", t.name, err)
		}
	}
	return dir, nil
}

func writeCSVFile(path string, headers []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(headers); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return file.Close()
}

func userRows(users []types.User) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.Username, u.Email, u.GenderIdentity, u.SexualOrientation, u.Note, strconv.FormatBool(u.Valid)})
	}
	return rows
}

func ideaRows(ideas []types.Idea) [][]string {
	rows := make([][]string, 0, len(ideas))
	for _, i := range ideas {
		rows = append(rows, []string{itoa(i.ID), i.UserID, i.Content, strconv.FormatBool(i.Valid), itoa(i.LikeCount)})
	}
	return rows
}

func commentRows(comments []types.Comment) [][]string {
	rows := make([][]string, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, []string{itoa(c.ID), itoa(c.IdeaID), c.UserID, c.Content})
	}
	return rows
}

func likeRows(likes []types.Like) [][]string {
	rows := make([][]string, 0, len(likes))
	for _, l := range likes {
		rows = append(rows, []string{itoa(l.ID), itoa(l.IdeaID), l.UserID})
	}
	return rows
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
