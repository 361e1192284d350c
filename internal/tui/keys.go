package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/idilsaglam/tasks/internal/config"
)

type keyMap struct {
	Quit, Add, Edit, Note, Delete, Search key.Binding
	Confirm, Cancel, SaveNote             key.Binding
	IDAsc, IDDesc, NameAsc, NameDesc      key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	bind := func(keys, help string) key.Binding {
		return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, help))
	}
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(k.Quit, "quit")),
		Add:      bind(k.Add, "add"),
		Edit:     bind(k.Edit, "rename"),
		Note:     bind(k.Note, "note"),
		Delete:   bind(k.Delete, "delete"),
		Search:   bind(k.Search, "search"),
		Confirm:  bind(k.Confirm, "confirm"),
		Cancel:   bind(k.Cancel, "cancel"),
		SaveNote: bind(k.SaveNote, "save note"),
		IDAsc:    bind(k.IDAsc, "id ↑"),
		IDDesc:   bind(k.IDDesc, "id ↓"),
		NameAsc:  bind(k.NameAsc, "name ↑"),
		NameDesc: bind(k.NameDesc, "name ↓"),
	}
}

func (k keyMap) browseHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Note, k.Delete, k.Search, k.IDAsc, k.IDDesc, k.NameAsc, k.NameDesc, k.Quit}
}
