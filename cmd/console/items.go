package console

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
)

type action int

const (
	actionCreate action = iota
	actionDrop
	actionSeed
	actionQuery
	actionValidity
	actionQuit
)

// item is a list entry with a single-key shortcut.
type item struct {
	key    string
	title  string
	desc   string
	action action
	value  string
}

func (i item) Title() string       { return "[" + i.key + "] " + i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

func menuItems() []list.Item {
	return []list.Item{
		item{key: "T", title: "Create tables", desc: "Create every missing table in reference order", action: actionCreate},
		item{key: "D", title: "Drop table(s)", desc: "Drop a table and every table that references it", action: actionDrop},
		item{key: "S", title: "Add sample data", desc: "Load the built-in sample users, ideas, comments and likes", action: actionSeed},
		item{key: "*", title: "Query for data", desc: "List every row of a table", action: actionQuery},
		item{key: "V", title: "Set validity", desc: "Invalidate or restore a user or an idea", action: actionValidity},
		item{key: "q", title: "Quit", desc: "Close the connection and exit", action: actionQuit},
	}
}

func tableItems(withAll bool, names ...tableName) []list.Item {
	items := make([]list.Item, 0, len(names)+1)
	for _, n := range names {
		items = append(items, item{key: n.key, title: n.title, value: n.table})
	}
	if withAll {
		items = append(items, item{key: "A", title: "All tables", desc: "Drop every table", value: allTables})
	}
	return items
}

func directiveItems() []list.Item {
	return []list.Item{
		item{key: "I", title: "Invalidate", desc: "Hide from downstream consumers", value: "Invalidate"},
		item{key: "R", title: "Restore", desc: "Make valid again", value: "Restore"},
	}
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 60, 20)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.Styles.Title = titleStyle
	return l
}

// shortcut finds the entry bound to key, ignoring case.
func shortcut(l list.Model, key string) (item, bool) {
	for _, li := range l.Items() {
		if it := li.(item); strings.EqualFold(it.key, key) {
			return it, true
		}
	}
	return item{}, false
}
