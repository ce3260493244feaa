package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasklite/internal/task"
)

const (
	fieldTitle = iota
	fieldDescription
)

// editModal holds draft title and description for one task. Nothing in it
// reaches the task list until the caller saves.
type editModal struct {
	taskID      string
	title       textinput.Model
	description textarea.Model
	focus       int
}

// newEditModal returns the modal with the title focused and the focus
// command to start its cursor.
func newEditModal(t task.Task, width int) (editModal, tea.Cmd) {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = task.MaxTitleLen
	ti.Width = task.MaxTitleLen + 1
	ti.SetValue(t.Title)

	ta := textarea.New()
	ta.Placeholder = "Description (optional)"
	ta.CharLimit = task.MaxDescriptionLen
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))
	if width <= 0 || width > 60 {
		width = 60
	}
	ta.SetWidth(width)
	ta.SetHeight(4)
	ta.SetValue(t.Description)
	ta.Blur()

	cmd := ti.Focus()
	return editModal{
		taskID:      t.ID,
		title:       ti,
		description: ta,
		focus:       fieldTitle,
	}, cmd
}

func (e editModal) TaskID() string {
	return e.taskID
}

func (e editModal) Title() string {
	return strings.TrimSpace(e.title.Value())
}

func (e editModal) Description() string {
	return task.NormalizeDescription(e.description.Value())
}

// CanSave mirrors the save button.
func (e editModal) CanSave() bool {
	return task.ValidTitle(e.title.Value()) && task.ValidDescription(e.description.Value())
}

func (e editModal) SwitchFocus() (editModal, tea.Cmd) {
	if e.focus == fieldTitle {
		e.focus = fieldDescription
		e.title.Blur()
		cmd := e.description.Focus()
		return e, cmd
	}
	e.focus = fieldTitle
	e.description.Blur()
	cmd := e.title.Focus()
	return e, cmd
}

func (e editModal) Update(msg tea.Msg) (editModal, tea.Cmd) {
	var cmd tea.Cmd
	if e.focus == fieldTitle {
		e.title, cmd = e.title.Update(msg)
	} else {
		e.description, cmd = e.description.Update(msg)
	}
	return e, cmd
}

func (e editModal) View(th Theme) string {
	titleCounter := th.Counter(task.Len(e.title.Value()), task.MaxTitleLen, titleCounterSteps)
	descCounter := th.Counter(task.Len(e.description.Value()), task.MaxDescriptionLen, descriptionCounterSteps)

	var b strings.Builder
	b.WriteString(th.ModalTitle.Render("Edit task"))
	b.WriteString("\n")
	b.WriteString(th.Label.Render("Title"))
	b.WriteString("\n")
	b.WriteString(e.title.View() + " " + titleCounter)
	b.WriteString("\n\n")
	b.WriteString(th.Label.Render("Description"))
	b.WriteString("\n")
	b.WriteString(e.description.View())
	b.WriteString("\n")
	b.WriteString(descCounter)
	return th.Modal.Render(b.String())
}
