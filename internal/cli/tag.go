package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kurtulus-bartu/personal-assistant/internal/model"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
}

var tagAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagAdd,
}

var tagListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tags",
	RunE:    runTagList,
}

var tagRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a tag",
	Args:    cobra.ExactArgs(1),
	RunE:    runTagRemove,
}

func init() {
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagListCmd)
	tagCmd.AddCommand(tagRemoveCmd)
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if _, exists := app.Tags.ByName(args[0]); exists {
		return fmt.Errorf("tag %q already exists", args[0])
	}

	tag := model.NewTag(args[0])
	app.Tags.Add(tag)
	fmt.Printf("✓ Added tag %d: %s\n", tag.ID, tag.Name)
	return nil
}

func runTagList(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	tags := app.Tags.Items()
	if len(tags) == 0 {
		fmt.Println("No tags.")
		return nil
	}
	for _, t := range tags {
		fmt.Printf("%d  %s\n", t.ID, t.Name)
	}
	return nil
}

func runTagRemove(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid tag id %q", args[0])
	}
	if !app.Tags.Remove(id) {
		return fmt.Errorf("no tag with id %d", id)
	}
	fmt.Printf("✓ Removed tag %d\n", id)
	return nil
}
