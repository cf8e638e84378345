package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kurtulus-bartu/personal-assistant/internal/model"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks, optionally filtered by status, tag or project.

Examples:
  assistant list
  assistant list --status doing
  assistant list --tag Work
  assistant list --project Thesis`,
	RunE: runList,
}

var (
	listStatus  string
	listTag     string
	listProject string
)

var (
	listTitleStyle = lipgloss.NewStyle().Bold(true)
	listMetaStyle  = lipgloss.NewStyle().Faint(true)
	statusStyles   = map[string]lipgloss.Style{
		model.StatusTodo:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		model.StatusDoing: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		model.StatusDone:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Filter by status (todo, doing, done or a synonym)")
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "Filter by tag name")
	listCmd.Flags().StringVarP(&listProject, "project", "P", "", "Filter by project name")
}

func runList(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	var tasks []model.Task
	switch {
	case listStatus != "":
		tasks = app.Tasks.ByStatus(listStatus)
	case listTag != "":
		tasks = app.Tasks.ByTag(listTag)
	case listProject != "":
		tasks = app.Tasks.ByProject(listProject)
	default:
		tasks = app.Tasks.Items()
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}

	for _, t := range tasks {
		status := t.NormalizedStatus()
		line := fmt.Sprintf("%s %s", statusStyles[status].Render("["+status+"]"), listTitleStyle.Render(t.Title))

		meta := ""
		if t.Project != nil {
			meta += " #" + *t.Project
		}
		if t.Tag != nil {
			meta += " @" + *t.Tag
		}
		if t.Due != nil {
			meta += " due " + t.Due.String()
		}
		if meta != "" {
			line += listMetaStyle.Render(meta)
		}

		fmt.Printf("%d  %s\n", t.ID, line)
	}
	return nil
}
