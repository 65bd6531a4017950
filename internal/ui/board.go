package ui

// Status board: one column per workflow state.

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danielsotopino/simple-taskmanager/internal/taskutil"
	"github.com/danielsotopino/simple-taskmanager/models"
	"github.com/danielsotopino/simple-taskmanager/store"
)

// GroupByStatus buckets listed tasks per workflow state. Inside each
// bucket the most urgent priorities come first; ties keep listing order.
func GroupByStatus(rows []store.ListedTask) map[models.TaskStatus][]store.ListedTask {
	grouped := make(map[models.TaskStatus][]store.ListedTask)
	for _, row := range rows {
		grouped[row.Status] = append(grouped[row.Status], row)
	}
	for _, bucket := range grouped {
		sort.SliceStable(bucket, func(i, j int) bool {
			return taskutil.PriorityToInt(bucket[i].Priority) > taskutil.PriorityToInt(bucket[j].Priority)
		})
	}
	return grouped
}

// RenderBoard renders the tasks as status columns side by side. Width is
// the terminal width; columns shrink to fit.
func RenderBoard(rows []store.ListedTask, width int) string {
	grouped := GroupByStatus(rows)

	statuses := models.AllStatuses()
	colWidth := 20
	if width > 0 {
		if w := width/len(statuses) - 4; w > colWidth {
			colWidth = w
		}
	}

	columns := make([]string, 0, len(statuses))
	for _, status := range statuses {
		var b strings.Builder
		b.WriteString(StatusStyle(status).Bold(true).Render(strings.ToUpper(string(status))))
		fmt.Fprintf(&b, " (%d)\n", len(grouped[status]))
		for _, row := range grouped[status] {
			title := row.Title
			if len(title) > colWidth {
				title = title[:colWidth-1] + "…"
			}
			fmt.Fprintf(&b, "#%s %s\n", row.ID, title)
			b.WriteString(StyleSubtle.Render(row.Context) + "\n")
		}
		columns = append(columns, StyleBoardColumn.Width(colWidth+2).Render(b.String()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}
