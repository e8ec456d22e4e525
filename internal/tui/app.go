package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stmtforge/internal/editor"
	"stmtforge/internal/model"
	"stmtforge/internal/numbering"
	"stmtforge/internal/roles"
	"stmtforge/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type promptMode int

const (
	promptNone promptMode = iota
	promptSearch
	promptAdd
	promptEdit
	promptRenumber
)

var filterTags = []string{"all", "shall", "must", "should", "may", "will", "process"}

type annotationsMsg struct {
	anns []roles.Annotation
	err  error
}

type appModel struct {
	store store.Store
	ed    *editor.Editor

	width  int
	height int

	filterIdx int
	search    string

	cursor      int
	rangeAnchor int // -1 when no pending range anchor

	prompt promptMode
	input  textinput.Model

	links  map[string]roles.LinkStatus
	status string

	saver *store.DebouncedSaver

	showDetail bool
}

func newAppModel(s store.Store, db *store.DB, cfg store.EditorConfig) appModel {
	in := textinput.New()
	in.CharLimit = 0
	return appModel{
		store:       s,
		ed:          editor.New(db.Statements, cfg),
		rangeAnchor: -1,
		input:       in,
		links:       map[string]roles.LinkStatus{},
		saver:       store.NewDebouncedSaver(s, 2*time.Second),
	}
}

// dirty hands the current state to the background saver. The clone keeps
// later edits from racing the deferred write.
func (m appModel) dirty() {
	m.saver.Notify(&store.DB{Version: 1, Statements: model.CloneStatements(m.ed.Statements())})
}

func (m appModel) Init() tea.Cmd { return m.annotateCmd() }

// annotateCmd runs the role-link pass against a snapshot captured now.
// Results are merged back by id, so edits racing ahead of the dictionary
// lookup are safe; annotations for since-deleted ids are dropped on merge.
func (m appModel) annotateCmd() tea.Cmd {
	snapshot := model.CloneStatements(m.ed.Statements())
	path := m.store.RolesDBPath()
	return func() tea.Msg {
		ctx := context.Background()
		dict, err := roles.OpenSQLite(ctx, path)
		if err != nil {
			return annotationsMsg{err: err}
		}
		defer dict.Close()
		anns, err := roles.Annotate(ctx, snapshot, dict)
		return annotationsMsg{anns: anns, err: err}
	}
}

func (m appModel) visible() []model.Statement {
	return m.ed.Display(filterTags[m.filterIdx], m.search)
}

func (m *appModel) clampCursor(rows []model.Statement) {
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m appModel) save() error {
	return m.store.Save(&store.DB{Version: 1, Statements: m.ed.Statements()})
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case annotationsMsg:
		if msg.err != nil {
			m.status = "role annotation: " + msg.err.Error()
			return m, nil
		}
		m.links = roles.MergeByID(m.ed.Statements(), msg.anns)
		return m, nil

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m appModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.prompt = promptNone
		m.input.Blur()
		return m, nil
	case "enter":
		value := m.input.Value()
		mode := m.prompt
		m.prompt = promptNone
		m.input.Blur()
		return m.applyPrompt(mode, value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.prompt == promptSearch {
		// Live search while typing.
		m.search = m.input.Value()
		m.clampCursor(m.visible())
	}
	return m, cmd
}

func (m appModel) applyPrompt(mode promptMode, value string) (tea.Model, tea.Cmd) {
	switch mode {
	case promptSearch:
		m.search = strings.TrimSpace(value)
		m.clampCursor(m.visible())
		return m, nil

	case promptAdd:
		if strings.TrimSpace(value) == "" {
			return m, nil
		}
		added, err := m.ed.Add(value, "", model.DefaultLevel)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = "added " + added.ID
		m.dirty()
		return m, m.annotateCmd()

	case promptEdit:
		rows := m.visible()
		if m.cursor >= len(rows) {
			return m, nil
		}
		if err := m.ed.SetDescription(rows[m.cursor].ID, value); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = "edited description"
		m.dirty()
		return m, nil

	case promptRenumber:
		// Input: "<base> [strategy]", e.g. "1 hierarchical".
		fields := strings.Fields(value)
		base := ""
		strategyName := ""
		if len(fields) > 0 {
			base = fields[0]
		}
		if len(fields) > 1 {
			strategyName = fields[1]
		}
		strategy, err := numbering.ParseStrategy(strategyName)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		selectedOnly := m.ed.Selection().Count(m.ed.Statements()) > 0
		if m.ed.Renumber(selectedOnly, base, strategy) {
			m.status = "renumbered (" + strategy.String() + ")"
			m.dirty()
		} else {
			m.status = "numbers unchanged"
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.visible()

	switch msg.String() {
	case "ctrl+c", "q":
		m.dirty()
		if err := m.saver.Flush(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "g":
		m.cursor = 0
		return m, nil
	case "G":
		m.cursor = len(rows) - 1
		m.clampCursor(rows)
		return m, nil

	case " ":
		if m.cursor < len(rows) {
			m.ed.Selection().Toggle(rows[m.cursor].ID)
		}
		return m, nil
	case "V":
		if m.rangeAnchor < 0 {
			m.rangeAnchor = m.cursor
			m.status = "range anchor set"
			return m, nil
		}
		m.ed.Selection().SelectRange(rows, m.rangeAnchor, m.cursor)
		m.rangeAnchor = -1
		m.status = "range selected"
		return m, nil
	case "a":
		m.ed.Selection().SelectAllVisible(rows)
		return m, nil
	case "c":
		m.ed.Selection().Clear()
		m.rangeAnchor = -1
		return m, nil

	case "n":
		return m.openPrompt(promptAdd, "description> ", "")
	case "e":
		if m.cursor < len(rows) {
			return m.openPrompt(promptEdit, "description> ", rows[m.cursor].Description)
		}
		return m, nil
	case "D":
		n := m.ed.DeleteSelected()
		if n == 0 {
			m.status = "nothing selected"
			return m, nil
		}
		m.status = fmt.Sprintf("deleted %d", n)
		m.dirty()
		m.clampCursor(m.visible())
		return m, nil
	case "m":
		survivor, err := m.ed.MergeSelected()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = "merged into " + survivor
		m.dirty()
		m.clampCursor(m.visible())
		return m, m.annotateCmd()
	case "s":
		newIDs, err := m.ed.SplitSelected()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("split into %d", len(newIDs))
		m.dirty()
		return m, m.annotateCmd()

	case ">":
		if m.ed.IndentSelected() {
			m.dirty()
		} else {
			m.status = "indent: no change"
		}
		return m, nil
	case "<":
		if m.ed.OutdentSelected() {
			m.dirty()
		} else {
			m.status = "outdent: no change"
		}
		return m, nil
	case "K":
		if m.ed.MoveSelectedUp() {
			m.dirty()
		} else {
			m.status = "move up: no change"
		}
		return m, nil
	case "J":
		if m.ed.MoveSelectedDown() {
			m.dirty()
		} else {
			m.status = "move down: no change"
		}
		return m, nil

	case "R":
		return m.openPrompt(promptRenumber, "base [strategy]> ", "")

	case "u":
		desc, _ := m.ed.LastOperation()
		if m.ed.Undo() {
			m.status = "undid " + desc
			m.dirty()
			m.clampCursor(m.visible())
			return m, m.annotateCmd()
		}
		m.status = "nothing to undo"
		return m, nil
	case "ctrl+r":
		if m.ed.Redo() {
			m.status = "redo"
			m.dirty()
			m.clampCursor(m.visible())
			return m, m.annotateCmd()
		}
		m.status = "nothing to redo"
		return m, nil

	case "/":
		return m.openPrompt(promptSearch, "search> ", m.search)
	case "f":
		m.filterIdx = (m.filterIdx + 1) % len(filterTags)
		m.clampCursor(m.visible())
		return m, nil
	case "enter":
		m.showDetail = !m.showDetail
		return m, nil
	case "S":
		if err := m.save(); err != nil {
			m.status = err.Error()
		} else {
			m.status = "saved"
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) openPrompt(mode promptMode, placeholder, initial string) (tea.Model, tea.Cmd) {
	m.prompt = mode
	m.input.Prompt = placeholder
	m.input.SetValue(initial)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m appModel) View() string {
	rows := m.visible()
	m.clampCursor(rows)

	header := styleHeader.Render(fmt.Sprintf(
		"Statement Forge  %d statements  %d selected  filter=%s%s  undo:%d",
		len(m.ed.Statements()),
		m.ed.Selection().Count(m.ed.Statements()),
		filterTags[m.filterIdx],
		searchSuffix(m.search),
		m.ed.UndoDepth(),
	))

	bodyH := m.height - 6
	if bodyH < 8 {
		bodyH = 8
	}
	listW := m.width
	if listW < 40 {
		listW = 40
	}
	detailW := 0
	if m.showDetail {
		detailW = listW / 2
		listW -= detailW + 1
	}

	body := m.viewRows(rows, listW, bodyH)
	if m.showDetail {
		detail := m.viewDetail(rows, detailW, bodyH)
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", detail)
	}

	var bottom string
	if m.prompt != promptNone {
		bottom = m.input.View()
	} else {
		bottom = styleFooter.Render("space: select  V: range  m: merge  s: split  </>: level  J/K: move  R: renumber  u: undo  /: search  f: filter  q: quit")
	}
	if m.status != "" {
		bottom = styleStatus.Render(m.status) + "\n" + bottom
	}

	return strings.Join([]string{header, body, bottom}, "\n\n")
}

func (m appModel) viewRows(rows []model.Statement, width, height int) string {
	if len(rows) == 0 {
		return styleFooter.Render("No statements match. Import with `stmtforge import` or press n to add.")
	}

	// Keep the cursor inside the window.
	top := 0
	if m.cursor >= height {
		top = m.cursor - height + 1
	}
	end := top + height
	if end > len(rows) {
		end = len(rows)
	}

	lines := make([]string, 0, end-top)
	for i := top; i < end; i++ {
		s := rows[i]
		lines = append(lines, renderRow(s, i == m.cursor, m.ed.Selection().Has(s.ID), m.links[s.ID], width))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) viewDetail(rows []model.Statement, width, height int) string {
	if m.cursor >= len(rows) {
		return ""
	}
	s := rows[m.cursor]
	meta := fmt.Sprintf("%s  level %d  %s", s.ID, s.Level, s.Source)
	if s.Number != "" {
		meta = s.Number + "  " + meta
	}
	link := ""
	if s.Role != "" {
		link = string(m.links[s.ID])
		if link == "" {
			link = "checking"
		}
		link = "\n" + "role: " + s.Role + " (" + link + ")"
	}
	body := renderMarkdown(s.Description, width-2)
	return lipgloss.NewStyle().Width(width).Height(height).Render(
		styleNumber.Render(meta) + link + "\n\n" + body,
	)
}

func searchSuffix(s string) string {
	if s == "" {
		return ""
	}
	return "  search=" + s
}
