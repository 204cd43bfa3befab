// Package output renders query results as terminal tables.
package output

import (
	"strconv"

	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorDanger  = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorBorder  = lipgloss.Color("#4B5563")

	headerStyle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	validStyle   = cellStyle.Foreground(colorSuccess)
	invalidStyle = cellStyle.Foreground(colorDanger).Bold(true)
	emptyStyle   = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
)

// newTable styles the header and, when stateCol is not negative, colours
// the validity column.
func newTable(rows [][]string, stateCol int, headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == stateCol && row >= 0 && row < len(rows) {
				if rows[row][col] == types.Valid.String() {
					return validStyle
				}
				return invalidStyle
			}
			return cellStyle
		})
}

func empty(name string) string {
	return emptyStyle.Render("no rows in " + name)
}

func Users(users []types.User) string {
	if len(users) == 0 {
		return empty(types.TableUsers)
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			u.ID, u.Username, u.Email, u.GenderIdentity, u.SexualOrientation, u.Note,
			types.Validity(u.Valid).String(),
		})
	}
	return newTable(rows, 6, "ID", "USERNAME", "EMAIL", "GENDER IDENTITY", "SEXUAL ORIENTATION", "NOTE", "STATE").Render()
}

func Ideas(ideas []types.Idea) string {
	if len(ideas) == 0 {
		return empty(types.TableIdeas)
	}
	rows := make([][]string, 0, len(ideas))
	for _, i := range ideas {
		rows = append(rows, []string{
			strconv.FormatInt(i.ID, 10), i.UserID, i.Content,
			strconv.FormatInt(i.LikeCount, 10),
			types.Validity(i.Valid).String(),
		})
	}
	return newTable(rows, 4, "ID", "USER", "CONTENT", "LIKES", "STATE").Render()
}

func Comments(comments []types.Comment) string {
	if len(comments) == 0 {
		return empty(types.TableComments)
	}
	rows := make([][]string, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10), strconv.FormatInt(c.IdeaID, 10), c.UserID, c.Content,
		})
	}
	return newTable(rows, -1, "ID", "IDEA", "USER", "CONTENT").Render()
}

func Likes(likes []types.Like) string {
	if len(likes) == 0 {
		return empty(types.TableLikes)
	}
	rows := make([][]string, 0, len(likes))
	for _, l := range likes {
		rows = append(rows, []string{
			strconv.FormatInt(l.ID, 10), strconv.FormatInt(l.IdeaID, 10), l.UserID,
		})
	}
	return newTable(rows, -1, "ID", "IDEA", "USER").Render()
}

func Status(statuses []types.TableStatus) string {
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		state := "absent"
		if s.Exists {
			state = "present"
		}
		rows = append(rows, []string{s.Table, state})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers("TABLE", "STATE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1 && row >= 0 && row < len(rows) && rows[row][1] == "present":
				return validStyle
			case col == 1:
				return cellStyle.Foreground(colorMuted)
			}
			return cellStyle
		}).
		Render()
}
