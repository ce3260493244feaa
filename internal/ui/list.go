package ui

import (
	"fmt"
	"strings"
	"time"

	"tasklite/internal/task"
)

const emptyListText = "No tasks"

// renderList draws tasks in the order given. expanded is the per-item
// description toggle; it lives only in the UI.
func renderList(th Theme, tasks []task.Task, cursor int, showCursor bool, expanded map[string]bool, now time.Time) string {
	if len(tasks) == 0 {
		return th.Empty.Render(emptyListText)
	}
	var b strings.Builder
	for i, t := range tasks {
		b.WriteString(renderItem(th, t, showCursor && i == cursor, expanded[t.ID], now))
		b.WriteString("\n")
	}
	return b.String()
}

func renderItem(th Theme, t task.Task, selected, expanded bool, now time.Time) string {
	cursor := "  "
	if selected {
		cursor = th.Cursor.Render("> ")
	}
	checkbox := "[ ]"
	title := th.Title.Render(t.Title)
	if t.Complete {
		checkbox = "[x]"
		title = th.Done.Render(t.Title)
	}
	marker := ""
	if t.HasDescription() && !expanded {
		marker = th.Muted.Render(" …")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s %s%s", cursor, checkbox, title, marker)
	if t.HasDescription() && expanded {
		b.WriteString("\n")
		desc := th.Description
		if t.Complete {
			desc = th.DoneDescription
		}
		b.WriteString(desc.Render(t.Description))
	}
	b.WriteString("\n")
	b.WriteString(th.Created.Render(formatCreated(t.Created, now)))
	return b.String()
}

// formatCreated renders created in now's location: "Today, 15:04",
// "Yesterday, 15:04", otherwise the full date.
func formatCreated(created, now time.Time) string {
	c := created.In(now.Location())
	clock := c.Format("15:04")
	switch {
	case sameDay(c, now):
		return "Today, " + clock
	case sameDay(c, now.AddDate(0, 0, -1)):
		return "Yesterday, " + clock
	default:
		return c.Format("02.01.2006, 15:04")
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func renderFilters(th Theme, active task.FilterMode) string {
	labels := map[task.FilterMode]string{
		task.FilterAll:       "All",
		task.FilterActive:    "Active",
		task.FilterCompleted: "Completed",
	}
	parts := make([]string, 0, len(task.FilterModes))
	for _, mode := range task.FilterModes {
		style := th.FilterOff
		if mode == active {
			style = th.FilterOn
		}
		parts = append(parts, style.Render(labels[mode]))
	}
	return strings.Join(parts, " ")
}

func renderTotals(s task.Stats) string {
	return fmt.Sprintf("Total: %d | Active: %d | Completed: %d", s.Total, s.Active, s.Completed)
}
