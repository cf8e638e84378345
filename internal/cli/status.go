package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status and collection counts",
	RunE:  runStatus,
}

var (
	statusHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusOKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	statusErrStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func runStatus(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	fmt.Println(statusHeaderStyle.Render("Sync"))
	if app.RemoteConfigured() {
		fmt.Printf("Backend:    %s\n", app.Config.SupabaseURL)
	} else {
		fmt.Println("Backend:    not configured")
	}

	if app.Status.Refreshing() {
		fmt.Println("Refreshing: yes")
	}
	if app.Status.BackingUp() {
		fmt.Println("Backing up: yes")
	}
	if last := app.Status.LastSync(); last != nil {
		fmt.Printf("Last sync:  %s\n", last.Local().Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("Last sync:  never")
	}
	if msg := app.Status.Err(); msg != "" {
		fmt.Printf("Status:     %s\n", statusErrStyle.Render("✗ "+msg))
	} else {
		fmt.Printf("Status:     %s\n", statusOKStyle.Render("✓ ok"))
	}

	fmt.Println()
	fmt.Println(statusHeaderStyle.Render("Local data"))
	fmt.Printf("Tags:       %d\n", app.Tags.Len())
	fmt.Printf("Projects:   %d\n", app.Projects.Len())
	fmt.Printf("Tasks:      %d\n", app.Tasks.Len())
	fmt.Printf("Events:     %d\n", app.Events.Len())
	return nil
}
