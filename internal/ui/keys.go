package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"tasklite/internal/config"
)

type keyMap struct {
	Quit            key.Binding
	Add             key.Binding
	Up              key.Binding
	Down            key.Binding
	Toggle          key.Binding
	Delete          key.Binding
	Edit            key.Binding
	Expand          key.Binding
	CycleFilter     key.Binding
	FilterAll       key.Binding
	FilterActive    key.Binding
	FilterCompleted key.Binding
	Confirm         key.Binding
	Cancel          key.Binding
	NextField       key.Binding
	Newline         key.Binding
	Help            key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:            binding("quit", k.Quit, "ctrl+c"),
		Add:             binding("add", k.Add),
		Up:              binding("up", k.Up, "up"),
		Down:            binding("down", k.Down, "down"),
		Toggle:          binding("toggle", k.Toggle),
		Delete:          binding("delete", k.Delete),
		Edit:            binding("edit", k.Edit),
		Expand:          binding("details", k.Expand),
		CycleFilter:     binding("filter", k.CycleFilter),
		FilterAll:       binding("all", k.FilterAll),
		FilterActive:    binding("active", k.FilterActive),
		FilterCompleted: binding("completed", k.FilterCompleted),
		Confirm:         binding("save", k.Confirm),
		Cancel:          binding("cancel", k.Cancel, "esc"),
		NextField:       binding("next field", "tab", "shift+tab"),
		Newline:         binding("newline", "alt+enter"),
		Help:            binding("help", k.Help),
	}
}

// binding drops empty and repeated keys; the first key is shown in help.
func binding(desc string, keys ...string) key.Binding {
	seen := map[string]bool{}
	var ks []string
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		ks = append(ks, k)
	}
	label := ""
	if len(ks) > 0 {
		label = keyLabel(ks[0])
	}
	return key.NewBinding(key.WithKeys(ks...), key.WithHelp(label, desc))
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.CycleFilter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Expand},
		{k.Add, k.Edit, k.Delete},
		{k.CycleFilter, k.FilterAll, k.FilterActive, k.FilterCompleted},
		{k.Help, k.Quit},
	}
}

type formKeys struct {
	keyMap
	modal bool
}

func (f formKeys) ShortHelp() []key.Binding {
	if f.modal {
		return []key.Binding{f.Confirm, f.NextField, f.Newline, f.Cancel}
	}
	return []key.Binding{f.Confirm, f.Cancel}
}

func (f formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{f.ShortHelp()}
}
