package tui

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tasks/internal/config"
	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/store"
	"github.com/idilsaglam/tasks/internal/store/jsonstore"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	ctrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, names ...string) (Model, *store.Store, string) {
	t.Helper()
	return newTestModelWithKeys(t, config.Default().Keys, names...)
}

func newTestModelWithKeys(t *testing.T, km config.Keymap, names ...string) (Model, *store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	st, err := store.Open(jsonstore.New(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range names {
		if _, _, err := st.Add(n); err != nil {
			t.Fatal(err)
		}
	}
	return New(st, km), st, path
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func reload(t *testing.T, path string) []model.Task {
	t.Helper()
	tasks, err := jsonstore.New(path).Load()
	if err != nil {
		t.Fatal(err)
	}
	return tasks
}

func listIDs(m Model) []int {
	var out []int
	for _, it := range m.list.Items() {
		out = append(out, it.(taskItem).task.ID)
	}
	return out
}

func TestAddTask(t *testing.T) {
	m, st, path := newTestModel(t)

	m = press(t, m, runes("a"), runes("Buy milk"), enter)

	want := []model.Task{{ID: 1, Name: "Buy milk"}}
	if !reflect.DeepEqual(st.Tasks(), want) {
		t.Errorf("store: got %#v", st.Tasks())
	}
	if !reflect.DeepEqual(reload(t, path), want) {
		t.Errorf("file: got %#v", reload(t, path))
	}
	if m.mode != modeBrowse {
		t.Errorf("expected browse mode after add, got %v", m.mode)
	}
	if got := listIDs(m); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("list: got %v", got)
	}
}

func TestAddBlankIsIgnored(t *testing.T) {
	m, st, _ := newTestModel(t, "Buy milk")

	m = press(t, m, runes("a"), runes("   "), enter)

	if len(st.Tasks()) != 1 {
		t.Errorf("expected store unchanged, got %#v", st.Tasks())
	}
	if m.statusErr {
		t.Errorf("blank add should not report an error, got %q", m.status)
	}
}

func TestAddCancel(t *testing.T) {
	m, st, _ := newTestModel(t)
	m = press(t, m, runes("a"), runes("nope"), esc)
	if len(st.Tasks()) != 0 {
		t.Errorf("expected no tasks, got %#v", st.Tasks())
	}
	if m.mode != modeBrowse {
		t.Errorf("expected browse mode, got %v", m.mode)
	}
}

func TestTypingQInAddModeDoesNotQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, runes("a"), runes("q"))
	if m.mode != modeAdd {
		t.Errorf("expected to stay in add mode, got %v", m.mode)
	}
	if got := m.input.Value(); got != "q" {
		t.Errorf("input: got %q, want %q", got, "q")
	}
}

func TestRenameSelectedTask(t *testing.T) {
	m, st, _ := newTestModel(t, "Buy milk", "Walk dog")
	if _, err := st.Edit(2, "Walk dog", "park"); err != nil {
		t.Fatal(err)
	}
	m.refresh()

	m = press(t, m, down, runes("e"))
	if m.mode != modeRename {
		t.Fatalf("expected rename mode, got %v", m.mode)
	}
	m.input.SetValue("Walk the dog")
	m = press(t, m, enter)

	got, err := st.Get(2)
	if err != nil {
		t.Fatal(err)
	}
	want := model.Task{ID: 2, Name: "Walk the dog", Note: "park"}
	if got != want {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestEditNote(t *testing.T) {
	m, st, path := newTestModel(t, "Buy milk")

	m = press(t, m, runes("n"), runes("two litres"), ctrlS)

	got, _ := st.Get(1)
	if got.Note != "two litres" || got.Name != "Buy milk" {
		t.Errorf("got %#v", got)
	}
	if reload(t, path)[0].Note != "two litres" {
		t.Errorf("note not persisted")
	}
	if m.mode != modeBrowse {
		t.Errorf("expected browse mode, got %v", m.mode)
	}
}

func TestDeleteWithConfirmation(t *testing.T) {
	m, st, _ := newTestModel(t, "Buy milk", "Walk dog")

	m = press(t, m, runes("d"), runes("n"))
	if len(st.Tasks()) != 2 {
		t.Fatalf("cancelled delete removed a task")
	}

	m = press(t, m, runes("d"), runes("y"))
	if got := st.Tasks(); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("expected only task 2 left, got %#v", got)
	}
	if got := listIDs(m); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("list: got %v", got)
	}
}

func TestSearchFiltersWithoutMutating(t *testing.T) {
	m, st, _ := newTestModel(t, "Buy milk", "Walk dog", "Milkshake")

	m = press(t, m, runes("/"), runes("MILK"))
	if got := listIDs(m); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("live search: got %v", got)
	}
	m = press(t, m, enter)
	if m.query != "MILK" || m.mode != modeBrowse {
		t.Errorf("expected search kept after enter, query=%q mode=%v", m.query, m.mode)
	}
	if len(st.Tasks()) != 3 {
		t.Errorf("search changed the store")
	}

	m = press(t, m, esc)
	if got := listIDs(m); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("after clearing: got %v", got)
	}
}

func TestSortKeys(t *testing.T) {
	m, st, path := newTestModel(t, "banana", "Apple", "cherry")

	tests := []struct {
		key  string
		want []int
	}{
		{"4", []int{3, 1, 2}},
		{"3", []int{2, 1, 3}},
		{"2", []int{3, 2, 1}},
		{"1", []int{1, 2, 3}},
	}
	for _, tt := range tests {
		m = press(t, m, runes(tt.key))
		if got := listIDs(m); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("key %s: list %v, want %v", tt.key, got, tt.want)
		}
		var stored []int
		for _, task := range reload(t, path) {
			stored = append(stored, task.ID)
		}
		if !reflect.DeepEqual(stored, tt.want) {
			t.Errorf("key %s: file order %v, want %v", tt.key, stored, tt.want)
		}
	}
	if len(st.Tasks()) != 3 {
		t.Errorf("sort changed task count")
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestReboundQuitKey(t *testing.T) {
	km := config.Default().Keys
	km.Quit = "x"
	m, _, _ := newTestModelWithKeys(t, km, "Buy milk")

	for _, msg := range []tea.KeyMsg{runes("q"), esc} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Errorf("%q should not quit once quit is rebound", msg.String())
		}
	}

	_, cmd := m.Update(runes("x"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg for the rebound key")
	}
}

func TestDeleteConfirmUsesKeymap(t *testing.T) {
	km := config.Default().Keys
	km.Cancel = "x"
	km.Confirm = "ctrl+y"
	m, st, _ := newTestModelWithKeys(t, km, "Buy milk", "Walk dog")

	m = press(t, m, runes("d"), runes("x"))
	if m.mode != modeBrowse {
		t.Fatalf("expected browse mode after cancel, got %v", m.mode)
	}
	if len(st.Tasks()) != 2 {
		t.Fatalf("cancelled delete removed a task")
	}

	m = press(t, m, runes("d"), tea.KeyMsg{Type: tea.KeyCtrlY})
	if got := st.Tasks(); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("expected only task 2 left, got %#v", got)
	}
	if m.mode != modeBrowse {
		t.Errorf("expected browse mode after confirm, got %v", m.mode)
	}
}

func TestPersistenceErrorShownAsStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "tasks.json")
	st := store.New(jsonstore.New(path))
	m := New(st, config.Default().Keys)

	m = press(t, m, runes("a"), runes("Buy milk"), enter)

	if !m.statusErr || !strings.Contains(m.status, "Not saved") {
		t.Errorf("expected persistence warning, got %q", m.status)
	}
	if len(st.Tasks()) != 1 {
		t.Errorf("task should stay in memory")
	}
}

func TestViewRendersTasks(t *testing.T) {
	m, _, _ := newTestModel(t, "Buy milk", "Walk dog")
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	for _, want := range []string{"Buy milk", "Walk dog", "Total"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
