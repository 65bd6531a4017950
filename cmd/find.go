/*
Copyright © 2025 Daniel Soto Pino
*/
package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/danielsotopino/simple-taskmanager/internal/taskutil"
	"github.com/danielsotopino/simple-taskmanager/internal/ui"
	"github.com/danielsotopino/simple-taskmanager/store"
)

var (
	findContext string
	findJSON    bool
)

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find [query]",
	Short: "Search tasks by title, description, and tags",
	Long: `Search tasks with a case-insensitive substring match over titles,
descriptions, and tags. With a query argument the matches are printed
once; without one an interactive, filterable browser opens.`,
	Args: cobra.ArbitraryArgs,
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().StringVarP(&findContext, "context", "C", "", "Restrict to one context (empty = all contexts)")
	findCmd.Flags().BoolVar(&findJSON, "json", false, "Emit JSON instead of a table (one-shot mode only)")
}

func runFind(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		HandleFatalError("Failed to initialize the task store", err)
	}
	defer func() { _ = taskStore.Close() }()

	query := strings.TrimSpace(strings.Join(args, " "))
	if query != "" {
		page, err := taskStore.ListTasks(store.TaskFilter{Context: findContext, Query: query, Limit: -1})
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if findJSON {
			return printJSON(page)
		}
		fmt.Print(ui.RenderTaskTable(page.Tasks))
		return nil
	}

	page, err := taskStore.ListTasks(store.TaskFilter{Context: findContext, Limit: -1})
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	if len(page.Tasks) == 0 {
		fmt.Println("No tasks to browse.")
		return nil
	}

	selected, err := browseTasks(page.Tasks)
	if err != nil {
		return err
	}
	if selected != nil {
		fmt.Print(ui.RenderTaskDetail(selected.Context, selected.Task))
	}
	return nil
}

// taskItem adapts a listed task to the bubbles list item contract.
type taskItem struct {
	row store.ListedTask
}

func (i taskItem) Title() string {
	return fmt.Sprintf("#%s %s", i.row.ID, i.row.Title)
}

func (i taskItem) Description() string {
	parts := []string{i.row.Context, string(i.row.Status), string(i.row.Priority)}
	if len(i.row.Tags) > 0 {
		parts = append(parts, strings.Join(i.row.Tags, ","))
	}
	return strings.Join(parts, " · ")
}

func (i taskItem) FilterValue() string {
	return i.row.Title + " " + i.row.Description + " " + strings.Join(i.row.Tags, " ")
}

// browserModel drives the interactive task browser.
type browserModel struct {
	list     list.Model
	selected *store.ListedTask
}

func newBrowserModel(rows []store.ListedTask) browserModel {
	// Walk the workflow left to right: todo first, done last. Ties keep
	// the listing's context order.
	ordered := make([]store.ListedTask, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return taskutil.StatusToInt(ordered[i].Status) < taskutil.StatusToInt(ordered[j].Status)
	})

	items := make([]list.Item, len(ordered))
	for i, row := range ordered {
		items[i] = taskItem{row: row}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(ui.ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(ui.ColorSecondary)

	l := list.New(items, delegate, 0, 0)
	l.Title = "Tasks"
	l.Styles.Title = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true)
	return browserModel{list: l}
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		// Don't intercept keys while the filter input is active.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(taskItem); ok {
				row := item.row
				m.selected = &row
			}
			return m, tea.Quit
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browserModel) View() string {
	return m.list.View()
}

// browseTasks opens the interactive browser and returns the task chosen
// with enter, or nil when the user quit without choosing.
func browseTasks(rows []store.ListedTask) (*store.ListedTask, error) {
	program := tea.NewProgram(newBrowserModel(rows), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("task browser failed: %w", err)
	}
	model, ok := final.(browserModel)
	if !ok {
		return nil, nil
	}
	return model.selected, nil
}
