package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"tasklite/internal/config"
	"tasklite/internal/task"
	"tasklite/internal/tasklist"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

type Model struct {
	list       *tasklist.List
	cfg        config.Config
	theme      Theme
	keys       keyMap
	help       help.Model
	progress   progress.Model
	logger     *log.Logger
	now        func() time.Time
	mode       mode
	filter     task.FilterMode
	cursor     int
	expanded   map[string]bool
	create     createForm
	edit       *editModal
	width      int
	status     string
	statusErr  bool
	confirmDel bool
	pendingDel *task.Task
}

// New builds the root model around an already opened list.
func New(list *tasklist.List, cfg config.Config, logger *log.Logger) Model {
	filter, err := task.ParseFilterMode(cfg.DefaultFilter)
	if err != nil {
		logger.Warn("ignoring default_filter", "err", err)
	}
	theme := DefaultTheme()
	keys := newKeyMap(cfg.Keys)
	return Model{
		list:     list,
		cfg:      cfg,
		theme:    theme,
		keys:     keys,
		help:     help.New(),
		progress: progress.New(progress.WithGradient(theme.GradientFrom, theme.GradientTo), progress.WithoutPercentage(), progress.WithWidth(40)),
		logger:   logger,
		now:      time.Now,
		mode:     modeList,
		filter:   filter,
		expanded: map[string]bool{},
		create:   newCreateForm(),
		status:   fmt.Sprintf("Press '%s' to add, %s to toggle, '%s' to edit.", keyLabel(cfg.Keys.Add), keyLabel(cfg.Keys.Toggle), keyLabel(cfg.Keys.Edit)),
	}
}

func Run(list *tasklist.List, cfg config.Config, logger *log.Logger) error {
	program := tea.NewProgram(New(list, cfg, logger), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.edit != nil {
			return m.updateEditMode(msg)
		}
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		if m.mode == modeAdd {
			return m.updateAddMode(msg)
		}
		return m.updateListMode(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		if w := msg.Width - 10; w > 10 && w < 60 {
			m.progress.Width = w
		}
	}
	return m, nil
}

// visible is the filtered projection the cursor indexes into.
func (m Model) visible() []task.Task {
	return task.Filter(m.list.Tasks(), m.filter)
}

func (m Model) selected() (task.Task, bool) {
	tasks := m.visible()
	if len(tasks) == 0 {
		return task.Task{}, false
	}
	return tasks[clampCursor(m.cursor, len(tasks))], true
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(action string, err error) {
	m.logger.Error(action+" failed", "err", err)
	m.status = fmt.Sprintf("%s failed: %v", action, err)
	m.statusErr = true
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.create.Reset()
		m.setStatus("Cancelled")
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if !m.create.CanSubmit() {
			m.setStatus("Title cannot be empty")
			return m, nil
		}
		t, ok, err := m.list.Add(m.create.Draft())
		if err != nil {
			m.setError("save", err)
		} else if ok {
			m.setStatus(fmt.Sprintf("Added %q", t.Title))
		}
		m.create.Reset()
		m.mode = modeList
		m.cursor = 0
		return m, nil
	default:
		var cmd tea.Cmd
		m.create, cmd = m.create.Update(msg)
		return m, cmd
	}
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.visible())
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, n)
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, n)
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.setStatus("Type a title and press Enter")
		cmd := m.create.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Toggle):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		if _, err := m.list.ToggleComplete(t.ID); err != nil {
			m.setError("toggle", err)
			return m, nil
		}
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		m.setStatus("Toggled task")
	case key.Matches(msg, m.keys.Expand):
		t, ok := m.selected()
		if !ok || !t.HasDescription() {
			return m, nil
		}
		m.expanded[t.ID] = !m.expanded[t.ID]
	case key.Matches(msg, m.keys.Edit):
		t, ok := m.selected()
		if !ok {
			m.setStatus("No tasks to edit")
			return m, nil
		}
		modal, cmd := newEditModal(t, m.width-8)
		m.edit = &modal
		m.mode = modeEdit
		m.setStatus("Editing task")
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirmDel = true
		m.pendingDel = &t
		m.setStatus(fmt.Sprintf("Delete %q? y/n", t.Title))
	case key.Matches(msg, m.keys.CycleFilter):
		m.setFilter(m.filter.Next())
	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(task.FilterAll)
	case key.Matches(msg, m.keys.FilterActive):
		m.setFilter(task.FilterActive)
	case key.Matches(msg, m.keys.FilterCompleted):
		m.setFilter(task.FilterCompleted)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) setFilter(f task.FilterMode) {
	m.filter = f
	m.cursor = 0
	m.setStatus("Showing " + string(f))
}

func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeEdit()
		m.setStatus("Edit cancelled")
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		modal, cmd := m.edit.SwitchFocus()
		m.edit = &modal
		return m, cmd
	case key.Matches(msg, m.keys.Confirm):
		if !m.edit.CanSave() {
			m.setStatus("Title cannot be empty")
			return m, nil
		}
		id, title, description := m.edit.TaskID(), m.edit.Title(), m.edit.Description()
		m.closeEdit()
		if _, err := m.list.Edit(id, title, description); err != nil {
			m.setError("save", err)
			return m, nil
		}
		m.setStatus("Task saved")
		return m, nil
	default:
		modal, cmd := m.edit.Update(msg)
		m.edit = &modal
		return m, cmd
	}
}

func (m *Model) closeEdit() {
	m.edit = nil
	m.mode = modeList
}

func (m Model) updateDeleteConfirm(pressed string) (tea.Model, tea.Cmd) {
	switch pressed {
	case "n", "N", "esc":
		m.setStatus("Delete cancelled")
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.setStatus("Nothing to delete")
			m.confirmDel = false
			return m, nil
		}
		id := m.pendingDel.ID
		m.confirmDel = false
		m.pendingDel = nil
		if _, err := m.list.Remove(id); err != nil {
			m.setError("delete", err)
			return m, nil
		}
		delete(m.expanded, id)
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		m.setStatus("Deleted task")
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	var b strings.Builder
	th := m.theme
	all := m.list.Tasks()
	stats := task.ComputeStats(all)

	b.WriteString(th.Header.Render("TaskLite"))
	b.WriteString("\n\n")

	if m.edit != nil {
		b.WriteString(m.edit.View(th))
		b.WriteString("\n\n")
		b.WriteString(m.renderStatus())
		b.WriteString("\n")
		b.WriteString(m.help.View(formKeys{keyMap: m.keys, modal: true}))
		return b.String()
	}

	b.WriteString(m.create.View(th))
	b.WriteString("\n\n")
	b.WriteString(renderFilters(th, m.filter))
	b.WriteString("\n\n")
	b.WriteString(m.progress.ViewAs(float64(stats.PercentComplete) / 100))
	b.WriteString("\n")
	b.WriteString(th.Muted.Render(fmt.Sprintf("Completed: %d%%", stats.PercentComplete)))
	b.WriteString("\n\n")
	b.WriteString(renderList(th, task.Filter(all, m.filter), m.cursor, m.mode == modeList, m.expanded, m.now()))
	b.WriteString("\n")
	b.WriteString(th.Muted.Render(renderTotals(stats)))
	b.WriteString("\n\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	if m.mode == modeAdd {
		b.WriteString(m.help.View(formKeys{keyMap: m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) renderStatus() string {
	if m.statusErr {
		return m.theme.Error.Render(m.status)
	}
	return m.theme.Status.Render(m.status)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
