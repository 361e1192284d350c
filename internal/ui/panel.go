package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tasks/internal/model"
)

const maxNameWidth = 80

// PanelString frames lines in the current theme's border.
func PanelString(lines []string) string {
	border := lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(current.BorderColor).
		Padding(0, 1)
	return border.Render(strings.Join(lines, "\n"))
}

// Panel draws a framed box using the current theme.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, PanelString(lines))
}

// Header is the title line with the number of tasks shown out of the total.
func Header(title string, shown, total int) string {
	count := fmt.Sprintf("%d", total)
	if shown != total {
		count = fmt.Sprintf("%d of %d", shown, total)
	}
	return fmt.Sprintf("%s  %s %s",
		current.Title.Render(title),
		current.Accent.Render("Total"), count,
	)
}

// TaskLine renders one row: id, name, and a marker when a note is attached.
func TaskLine(t model.Task) string {
	id := current.Muted.Render(fmt.Sprintf("%3d.", t.ID))
	mark := " "
	if t.Note != "" {
		mark = current.Accent.Render(current.SymNote)
	}
	return fmt.Sprintf("%s %s %s", id, mark, Truncate(t.Name, maxNameWidth))
}

// TaskLines renders every task, or a placeholder for an empty list.
func TaskLines(tasks []model.Task) []string {
	if len(tasks) == 0 {
		return []string{current.Muted.Render("no tasks")}
	}
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskLine(t))
	}
	return out
}

// TaskDetail renders one task with its full note.
func TaskDetail(t model.Task) []string {
	lines := []string{
		fmt.Sprintf("%s %s", current.Title.Render(fmt.Sprintf("Task #%d", t.ID)), t.Name),
		"",
	}
	if t.Note == "" {
		return append(lines, current.Muted.Render("(no note)"))
	}
	return append(lines, strings.Split(t.Note, "\n")...)
}

// Truncate cuts s to width runes, ending with "...".
func Truncate(s string, width int) string {
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if width < 4 || len(r) <= width {
		return string(r)
	}
	return string(r[:width-3]) + "..."
}
