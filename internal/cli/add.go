package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kurtulus-bartu/personal-assistant/internal/model"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Long: `Add a task to the local collection and schedule a background push.

Examples:
  assistant add "Buy milk"
  assistant add "Write report" --project Work --due 2026-09-05
  assistant add "Research" --tag Deep --status doing`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addNotes   string
	addStatus  string
	addTag     string
	addProject string
	addDue     string
	addParent  int64
)

func init() {
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Task notes")
	addCmd.Flags().StringVar(&addStatus, "status", "", "Status (todo, doing, done or a synonym)")
	addCmd.Flags().StringVarP(&addTag, "tag", "t", "", "Tag name")
	addCmd.Flags().StringVarP(&addProject, "project", "P", "", "Project name")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD)")
	addCmd.Flags().Int64Var(&addParent, "parent", 0, "Parent task id")
}

func runAdd(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	task := model.NewTask(strings.Join(args, " "))

	if addNotes != "" {
		task.Notes = &addNotes
	}
	if addStatus != "" {
		status := model.NormalizeStatus(addStatus)
		task.Status = &status
	}
	if addTag != "" {
		tag, ok := app.Tags.ByName(addTag)
		if !ok {
			return fmt.Errorf("unknown tag %q, create it first with 'assistant tag add'", addTag)
		}
		task.TagID = &tag.ID
		task.Tag = &tag.Name
	}
	if addProject != "" {
		project, ok := app.Projects.ByName(addProject)
		if !ok {
			return fmt.Errorf("unknown project %q, create it first with 'assistant project add'", addProject)
		}
		task.ProjectID = &project.ID
		task.Project = &project.Name
	}
	if addDue != "" {
		t, err := time.Parse("2006-01-02", addDue)
		if err != nil {
			return fmt.Errorf("invalid due date %q, expected YYYY-MM-DD", addDue)
		}
		due := model.NewDateOnly(t)
		task.Due = &due
	}
	if addParent != 0 {
		if _, ok := app.Tasks.Get(addParent); !ok {
			return fmt.Errorf("unknown parent task %d", addParent)
		}
		task.ParentID = &addParent
	}

	app.Tasks.Add(task)
	fmt.Printf("✓ Added task %d: %s\n", task.ID, task.Title)
	return nil
}
