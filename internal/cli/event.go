package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/kurtulus-bartu/personal-assistant/internal/model"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage calendar events",
}

var eventAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add an event",
	Long: `Add a calendar event.

Examples:
  assistant event add "Standup" --start "2026-09-01 09:30" --end "2026-09-01 09:45"
  assistant event add "Gym" --start "2026-09-01 18:00" --end "2026-09-01 19:00" --tag Health`,
	Args: cobra.ExactArgs(1),
	RunE: runEventAdd,
}

var eventListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List events",
	RunE:    runEventList,
}

var eventRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove an event",
	Args:    cobra.ExactArgs(1),
	RunE:    runEventRemove,
}

var (
	eventStart   string
	eventEnd     string
	eventNotes   string
	eventTag     string
	eventProject string
	eventDay     string
)

const eventTimeLayout = "2006-01-02 15:04"

func init() {
	eventAddCmd.Flags().StringVar(&eventStart, "start", "", "Start time (YYYY-MM-DD HH:MM)")
	eventAddCmd.Flags().StringVar(&eventEnd, "end", "", "End time (YYYY-MM-DD HH:MM)")
	eventAddCmd.Flags().StringVarP(&eventNotes, "notes", "n", "", "Notes")
	eventAddCmd.Flags().StringVarP(&eventTag, "tag", "t", "", "Tag name")
	eventAddCmd.Flags().StringVarP(&eventProject, "project", "P", "", "Project name")
	eventListCmd.Flags().StringVarP(&eventDay, "day", "d", "", "Only events on this day (YYYY-MM-DD)")

	eventCmd.AddCommand(eventAddCmd)
	eventCmd.AddCommand(eventListCmd)
	eventCmd.AddCommand(eventRemoveCmd)
}

func runEventAdd(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if eventStart == "" || eventEnd == "" {
		return fmt.Errorf("--start and --end are required")
	}
	start, err := time.ParseInLocation(eventTimeLayout, eventStart, time.Local)
	if err != nil {
		return fmt.Errorf("invalid --start %q, want YYYY-MM-DD HH:MM", eventStart)
	}
	end, err := time.ParseInLocation(eventTimeLayout, eventEnd, time.Local)
	if err != nil {
		return fmt.Errorf("invalid --end %q, want YYYY-MM-DD HH:MM", eventEnd)
	}
	if end.Before(start) {
		return fmt.Errorf("--end is before --start")
	}

	event := model.NewEvent(args[0], start, end)
	if eventNotes != "" {
		event.Notes = &eventNotes
	}
	if eventTag != "" {
		tag, ok := app.Tags.ByName(eventTag)
		if !ok {
			return fmt.Errorf("unknown tag %q, create it first with 'assistant tag add'", eventTag)
		}
		event.TagID = &tag.ID
		event.Tag = &tag.Name
	}
	if eventProject != "" {
		project, ok := app.Projects.ByName(eventProject)
		if !ok {
			return fmt.Errorf("unknown project %q, create it first with 'assistant project add'", eventProject)
		}
		event.ProjectID = &project.ID
		event.Project = &project.Name
	}

	app.Events.Add(event)
	fmt.Printf("✓ Added event %d: %s\n", event.ID, event.Title)
	return nil
}

func runEventList(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	var events []model.Event
	if eventDay != "" {
		day, err := time.ParseInLocation("2006-01-02", eventDay, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --day %q, want YYYY-MM-DD", eventDay)
		}
		events = app.Events.ForDay(day)
	} else {
		events = app.Events.Items()
		model.SortByStart(events)
	}

	if len(events) == 0 {
		fmt.Println("No events.")
		return nil
	}

	for _, e := range events {
		line := fmt.Sprintf("%s - %s  %s",
			e.Start.Format(eventTimeLayout),
			e.End.Format("15:04"),
			listTitleStyle.Render(e.Title))

		meta := ""
		if e.Project != nil {
			meta += " #" + *e.Project
		}
		if e.Tag != nil {
			meta += " @" + *e.Tag
		}
		if meta != "" {
			line += listMetaStyle.Render(meta)
		}

		fmt.Printf("%d  %s\n", e.ID, line)
	}
	return nil
}

func runEventRemove(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid event id %q", args[0])
	}
	if !app.Events.Remove(id) {
		return fmt.Errorf("no event with id %d", id)
	}
	fmt.Printf("✓ Removed event %d\n", id)
	return nil
}
