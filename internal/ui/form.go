package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasklite/internal/task"
)

// createForm holds the draft title for a new task. The input drops runes
// past task.MaxTitleLen as they are typed.
type createForm struct {
	input textinput.Model
}

func newCreateForm() createForm {
	ti := textinput.New()
	ti.Placeholder = "New task"
	ti.CharLimit = task.MaxTitleLen
	ti.Width = task.MaxTitleLen + 1
	return createForm{input: ti}
}

func (f createForm) Draft() string {
	return f.input.Value()
}

// CanSubmit mirrors the add button: the draft must be non-blank and within
// the bound.
func (f createForm) CanSubmit() bool {
	return task.ValidTitle(f.Draft())
}

func (f *createForm) Focus() tea.Cmd {
	return f.input.Focus()
}

func (f *createForm) Reset() {
	f.input.SetValue("")
	f.input.Blur()
}

func (f createForm) Update(msg tea.Msg) (createForm, tea.Cmd) {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f createForm) View(th Theme) string {
	return f.input.View() + " " + th.Counter(task.Len(f.Draft()), task.MaxTitleLen, titleCounterSteps)
}
