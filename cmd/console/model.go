// Package console is the interactive admin console. It only calls the typed
// session operations and renders what they return.
package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/knights/cmd/output"
	"github.com/Lumos-Labs-HQ/knights/internal/schema"
	"github.com/Lumos-Labs-HQ/knights/internal/seeder"
	"github.com/Lumos-Labs-HQ/knights/internal/session"
	"github.com/Lumos-Labs-HQ/knights/internal/types"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Mode int

const (
	ModeMenu Mode = iota
	ModeTable
	ModeID
	ModeDirective
	ModeConfirm
	ModeBusy
	ModeResult
)

const allTables = "*all*"

type tableName struct {
	key   string
	title string
	table string
}

// resultMsg carries the rendered outcome of an operation.
type resultMsg struct {
	text string
	warn bool
	err  error
}

type Model struct {
	ctx  context.Context
	sess *session.Session

	mode       Mode
	action     action
	menu       list.Model
	tables     list.Model
	directives list.Model
	input      textinput.Model
	spinner    spinner.Model

	table  string
	id     string
	result resultMsg
	width  int
	height int
}

func NewModel(ctx context.Context, sess *session.Session) Model {
	input := textinput.New()
	input.Prompt = "ID :> "
	input.CharLimit = 255

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return Model{
		ctx:        ctx,
		sess:       sess,
		mode:       ModeMenu,
		menu:       newList("Main Menu", menuItems()),
		tables:     newList("", nil),
		directives: newList("Set validity to", directiveItems()),
		input:      input,
		spinner:    sp,
	}
}

func (m Model) Mode() Mode { return m.mode }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.menu, &m.tables, &m.directives} {
			l.SetSize(msg.Width-4, msg.Height-6)
		}
		return m, nil

	case resultMsg:
		m.result = msg
		m.mode = ModeResult
		return m, nil

	case spinner.TickMsg:
		if m.mode != ModeBusy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.mode {
	case ModeMenu:
		if key == "enter" {
			if it, ok := m.menu.SelectedItem().(item); ok {
				return m.choose(it.action)
			}
			return m, nil
		}
		if it, ok := shortcut(m.menu, key); ok {
			return m.choose(it.action)
		}
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd

	case ModeTable:
		if key == "esc" {
			return m.backToMenu(), nil
		}
		picked, ok := m.pick(&m.tables, msg)
		if !ok {
			var cmd tea.Cmd
			m.tables, cmd = m.tables.Update(msg)
			return m, cmd
		}
		m.table = picked.value
		return m.afterTable()

	case ModeID:
		switch key {
		case "esc":
			return m.backToMenu(), nil
		case "enter":
			m.id = strings.TrimSpace(m.input.Value())
			m.input.Blur()
			m.mode = ModeDirective
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case ModeDirective:
		if key == "esc" {
			return m.backToMenu(), nil
		}
		picked, ok := m.pick(&m.directives, msg)
		if !ok {
			var cmd tea.Cmd
			m.directives, cmd = m.directives.Update(msg)
			return m, cmd
		}
		return m.run(m.setValidity(picked.value))

	case ModeConfirm:
		switch strings.ToLower(key) {
		case "y":
			if m.table == allTables {
				return m.run(m.dropAll())
			}
			return m.run(m.dropCascade(m.table))
		case "n", "esc", "q":
			return m.backToMenu(), nil
		}
		return m, nil

	case ModeResult:
		if key == "q" {
			return m, tea.Quit
		}
		return m.backToMenu(), nil
	}

	return m, nil
}

// pick resolves enter or a shortcut key to a list entry.
func (m Model) pick(l *list.Model, msg tea.KeyMsg) (item, bool) {
	if msg.String() == "enter" {
		it, ok := l.SelectedItem().(item)
		return it, ok
	}
	return shortcut(*l, msg.String())
}

func (m Model) choose(a action) (tea.Model, tea.Cmd) {
	m.action = a
	switch a {
	case actionQuit:
		return m, tea.Quit
	case actionCreate:
		return m.run(m.createAll())
	case actionSeed:
		return m.run(m.loadSample())
	case actionDrop:
		m.tables = newList("Drop which table?", tableItems(true, m.tableNames()...))
	case actionQuery:
		m.tables = newList("Get data from which table?", tableItems(false, m.tableNames()...))
	case actionValidity:
		var names []tableName
		for _, n := range m.tableNames() {
			if n.table == types.TableUsers || n.table == types.TableIdeas {
				names = append(names, n)
			}
		}
		m.tables = newList("Set validity of a (U)ser or (I)dea?", tableItems(false, names...))
	}
	if m.width > 0 {
		m.tables.SetSize(m.width-4, m.height-6)
	}
	m.mode = ModeTable
	return m, nil
}

func (m Model) afterTable() (tea.Model, tea.Cmd) {
	switch m.action {
	case actionDrop:
		m.mode = ModeConfirm
		return m, nil
	case actionQuery:
		return m.run(m.query(m.table))
	case actionValidity:
		m.input.SetValue("")
		m.mode = ModeID
		return m, m.input.Focus()
	}
	return m.backToMenu(), nil
}

func (m Model) backToMenu() Model {
	m.mode = ModeMenu
	m.table = ""
	m.id = ""
	m.result = resultMsg{}
	return m
}

func (m Model) run(op tea.Cmd) (tea.Model, tea.Cmd) {
	m.mode = ModeBusy
	return m, tea.Batch(m.spinner.Tick, op)
}

func (m Model) tableNames() []tableName {
	names := make([]tableName, 0, len(schema.Tables))
	for _, t := range schema.Tables {
		names = append(names, tableName{key: t.Entity[:1], title: t.Entity, table: t.Name})
	}
	return names
}

func (m Model) createAll() tea.Cmd {
	return func() tea.Msg {
		results, err := m.sess.Schema.CreateAll(m.ctx)
		return resultMsg{text: tableLines(results, true), err: err}
	}
}

func (m Model) dropAll() tea.Cmd {
	return func() tea.Msg {
		results, err := m.sess.Schema.DropAll(m.ctx)
		return resultMsg{text: tableLines(results, false), err: err}
	}
}

func (m Model) dropCascade(table string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.sess.Schema.DropCascade(m.ctx, table)
		return resultMsg{text: tableLines(results, false), err: err}
	}
}

func (m Model) loadSample() tea.Cmd {
	return func() tea.Msg {
		data, err := seeder.SampleData()
		if err != nil {
			return resultMsg{err: err}
		}
		report, err := m.sess.Seeder.LoadSeed(m.ctx, data, seeder.LoadOptions{})
		return resultMsg{text: output.LoadSummary(report), err: err}
	}
}

func (m Model) query(table string) tea.Cmd {
	return func() tea.Msg {
		rendered, err := output.Query(m.ctx, m.sess.Validity, table)
		return resultMsg{text: rendered, err: err}
	}
}

func (m Model) setValidity(directive string) tea.Cmd {
	table, id := m.table, m.id
	return func() tea.Msg {
		state, err := types.ParseValidity(directive)
		if err != nil {
			return resultMsg{err: err}
		}
		n, err := m.sess.Validity.Set(m.ctx, table, id, state)
		return resultMsg{text: output.ValidityResult(table, id, state, n), warn: n == 0, err: err}
	}
}

func tableLines(results []types.TableResult, created bool) string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, output.TableResult(r, created))
	}
	return strings.Join(lines, "\n")
}

func (m Model) View() string {
	switch m.mode {
	case ModeMenu:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.menu.View(),
			helpStyle.Render(formatKey("↑/↓", "navigate")+" • "+formatKey("enter", "select")+" • "+formatKey("q", "quit")),
		)

	case ModeTable:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.tables.View(),
			helpStyle.Render(formatKey("enter", "select")+" • "+formatKey("esc", "back")),
		)

	case ModeID:
		return boxStyle.Render(
			titleStyle.Render("Input ID of "+m.table) + "\n" + m.input.View() + "\n" +
				helpStyle.Render(formatKey("enter", "confirm")+" • "+formatKey("esc", "back")),
		)

	case ModeDirective:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.directives.View(),
			helpStyle.Render(formatKey("enter", "apply")+" • "+formatKey("esc", "back")),
		)

	case ModeConfirm:
		what := "every table"
		if m.table != allTables {
			what = fmt.Sprintf("'%s' and every table that references it", m.table)
		}
		return boxStyle.Render(
			warningStyle.Render("Drop "+what+"?") + "\n" +
				"Data cannot be recovered.\n" +
				helpStyle.Render(formatKey("y", "drop")+" • "+formatKey("n", "cancel")),
		)

	case ModeBusy:
		return m.spinner.View() + " Working..."

	case ModeResult:
		var body string
		switch {
		case m.result.err != nil:
			body = m.result.text
			if body != "" {
				body += "\n"
			}
			body += errorStyle.Render(output.Describe(m.result.err))
		case m.result.warn:
			body = warningStyle.Render(m.result.text)
		default:
			body = successStyle.Render("Done") + "\n\n" + m.result.text
		}
		return body + "\n" + helpStyle.Render(formatKey("any key", "menu")+" • "+formatKey("q", "quit"))
	}

	return "Unknown mode"
}

// Run starts the console on an open session. The caller owns the session.
func Run(ctx context.Context, sess *session.Session) error {
	p := tea.NewProgram(NewModel(ctx, sess), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
