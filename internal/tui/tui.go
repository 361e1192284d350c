// Package tui is the interactive front end. It turns key presses into store
// operations and redraws from the snapshots the store hands back.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tasks/internal/config"
	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/store"
	"github.com/idilsaglam/tasks/internal/ui"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeRename
	modeNote
	modeSearch
	modeConfirmDelete
)

// lines taken by everything around the list
const chromeHeight = 6

type Model struct {
	store *store.Store
	keys  keyMap

	list  list.Model
	input textinput.Model // shared by add, rename and search
	note  textarea.Model

	mode     mode
	query    string
	targetID int // task being renamed, annotated or deleted

	status    string
	statusErr bool
	width     int
}

// New builds the interactive model over st.
func New(st *store.Store, km config.Keymap) Model {
	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	// quitting goes through the configured keymap only
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.Styles.Title = ui.Current().Title
	l.Styles.TitleBar = lipgloss.NewStyle()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	ta := textarea.New()
	ta.Placeholder = "Note..."
	ta.ShowLineNumbers = false
	ta.SetHeight(5)

	m := Model{
		store: st,
		keys:  newKeyMap(km),
		list:  l,
		input: ti,
		note:  ta,
		width: 80,
	}
	m.refresh()
	return m
}

// Run starts the Bubble Tea program. Every change is already persisted by
// the store when the program exits.
func Run(st *store.Store, km config.Keymap) error {
	_, err := tea.NewProgram(New(st, km), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.list.SetSize(msg.Width-4, max(3, msg.Height-chromeHeight-m.editorHeight()))
		m.input.Width = max(10, msg.Width-10)
		m.note.SetWidth(max(10, msg.Width-6))
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeRename:
			return m.updateRename(msg)
		case modeNote:
			return m.updateNote(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
		return m.updateBrowse(msg)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		if m.query != "" {
			m.query = ""
			m.refresh()
			m.setStatus("Search cleared")
		}
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.SetValue("")
		m.input.Placeholder = "New task name..."
		m.status = ""
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.input.SetValue(m.query)
		m.input.CursorEnd()
		m.input.Placeholder = "Search by name..."
		m.status = ""
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.IDAsc):
		return m.sort(store.SortByID, store.Ascending)
	case key.Matches(msg, m.keys.IDDesc):
		return m.sort(store.SortByID, store.Descending)
	case key.Matches(msg, m.keys.NameAsc):
		return m.sort(store.SortByName, store.Ascending)
	case key.Matches(msg, m.keys.NameDesc):
		return m.sort(store.SortByName, store.Descending)
	}

	task, ok := m.selected()
	switch {
	case key.Matches(msg, m.keys.Edit):
		if !ok {
			return m, nil
		}
		m.mode = modeRename
		m.targetID = task.ID
		m.input.SetValue(task.Name)
		m.input.CursorEnd()
		m.input.Placeholder = "Task name..."
		m.status = ""
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Note):
		if !ok {
			return m, nil
		}
		m.mode = modeNote
		m.targetID = task.ID
		m.note.SetValue(task.Note)
		m.status = ""
		cmd := m.note.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		if !ok {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.targetID = task.ID
		m.setStatus(fmt.Sprintf("Delete %q? y/n", task.Name))
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeInput()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		task, ok, err := m.store.Add(m.input.Value())
		m.closeInput()
		if !ok {
			if err != nil {
				m.setError(err)
			}
			return m, nil
		}
		m.refresh()
		m.selectID(task.ID)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Added #%d", task.ID))
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeInput()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		name := m.input.Value()
		m.closeInput()
		current, err := m.store.Get(m.targetID)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		_, err = m.store.Edit(m.targetID, name, current.Note)
		m.refresh()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Renamed #%d", m.targetID))
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeNote()
		return m, nil
	case key.Matches(msg, m.keys.SaveNote):
		text := m.note.Value()
		m.closeNote()
		_, err := m.store.Edit(m.targetID, "", text)
		m.refresh()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Saved note for #%d", m.targetID))
		return m, nil
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	return m, cmd
}

// Search runs on every key press, like a live filter.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.query = ""
		m.closeInput()
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		m.closeInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != m.query {
		m.query = q
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch s := msg.String(); {
	case s == "y" || s == "Y" || key.Matches(msg, m.keys.Confirm):
		m.mode = modeBrowse
		err := m.store.Delete(m.targetID)
		m.refresh()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("Deleted task")
	case s == "n" || s == "N" || key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		m.setStatus("Delete cancelled")
	}
	return m, nil
}

func (m Model) sort(k store.SortKey, d store.Direction) (tea.Model, tea.Cmd) {
	id, hasSel := m.selectedID()
	_, err := m.store.SortBy(k, d)
	m.refresh()
	if hasSel {
		m.selectID(id)
	}
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.setStatus(fmt.Sprintf("Sorted by %s (%s)", k, d))
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")

	t := ui.Current()
	switch m.mode {
	case modeAdd, modeRename, modeSearch:
		title := map[mode]string{modeAdd: "Add task", modeRename: "Rename task", modeSearch: "Search"}[m.mode]
		b.WriteString(m.box(t.Accent.Render(title) + "\n" + m.input.View()))
		b.WriteString("\n")
	case modeNote:
		title := fmt.Sprintf("Note for #%d  %s", m.targetID,
			t.Muted.Render(fmt.Sprintf("(%s save, %s cancel)", m.keys.SaveNote.Help().Key, m.keys.Cancel.Help().Key)))
		b.WriteString(m.box(t.Accent.Render(title) + "\n" + m.note.View()))
		b.WriteString("\n")
	default:
		if task, ok := m.selected(); ok && task.Note != "" {
			b.WriteString(t.Muted.Render(ui.Truncate(task.Note, max(10, m.width-4))))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		style := t.Success
		if m.statusErr {
			style = t.Error
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(t.Muted.Render(m.helpLine()))
	return ui.PanelString([]string{b.String()})
}

func (m Model) box(inner string) string {
	return lipgloss.NewStyle().
		Border(ui.Current().Border).
		BorderForeground(ui.Current().BorderColor).
		Padding(0, 1).
		Render(inner)
}

func (m Model) helpLine() string {
	var parts []string
	for _, b := range m.keys.browseHelp() {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	if m.query != "" {
		parts = append(parts, m.keys.Cancel.Help().Key+" clear search")
	}
	return strings.Join(parts, " • ")
}

// refresh redraws the list from a fresh store snapshot.
func (m *Model) refresh() {
	shown := m.store.Search(m.query)
	m.list.SetItems(toItems(shown))
	if n := len(shown); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	title := ui.Header("Tasks", len(shown), len(m.store.Tasks()))
	if m.query != "" {
		title += "  " + ui.Current().Muted.Render(fmt.Sprintf("matching %q", m.query))
	}
	m.list.Title = title
}

func (m *Model) selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return model.Task{}, false
	}
	return it.task, true
}

func (m *Model) selectedID() (int, bool) {
	t, ok := m.selected()
	return t.ID, ok
}

func (m *Model) selectID(id int) {
	for i, it := range m.list.Items() {
		if ti, ok := it.(taskItem); ok && ti.task.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.input.SetValue("")
	m.input.Blur()
}

func (m *Model) closeNote() {
	m.mode = modeBrowse
	m.note.SetValue("")
	m.note.Blur()
}

func (m *Model) editorHeight() int {
	if m.mode == modeNote {
		return m.note.Height() + 3
	}
	return 3
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	var pe *store.PersistenceError
	if errors.As(err, &pe) {
		m.status = "Not saved: " + err.Error()
	} else {
		m.status = err.Error()
	}
	m.statusErr = true
}
