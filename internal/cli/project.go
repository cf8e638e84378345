package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kurtulus-bartu/personal-assistant/internal/model"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectAdd,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects",
	RunE:    runProjectList,
}

var projectRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a project",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectRemove,
}

var projectTag string

func init() {
	projectAddCmd.Flags().StringVarP(&projectTag, "tag", "t", "", "Tag name")
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectRemoveCmd)
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	var tagID *int64
	if projectTag != "" {
		tag, ok := app.Tags.ByName(projectTag)
		if !ok {
			return fmt.Errorf("unknown tag %q, create it first with 'assistant tag add'", projectTag)
		}
		tagID = &tag.ID
	}

	project := model.NewProject(args[0], tagID)
	app.Projects.Add(project)
	fmt.Printf("✓ Added project %d: %s\n", project.ID, project.Name)
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	projects := app.Projects.Items()
	if len(projects) == 0 {
		fmt.Println("No projects.")
		return nil
	}
	for _, p := range projects {
		line := fmt.Sprintf("%d  %s", p.ID, p.Name)
		if p.TagID != nil {
			if tag, ok := app.Tags.Get(*p.TagID); ok {
				line += "  @" + tag.Name
			}
		}
		fmt.Println(line)
	}
	return nil
}

func runProjectRemove(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid project id %q", args[0])
	}
	if !app.Projects.Remove(id) {
		return fmt.Errorf("no project with id %d", id)
	}
	fmt.Printf("✓ Removed project %d\n", id)
	return nil
}
