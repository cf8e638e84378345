package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace local data with the backend copy",
	Long: `Pull tags, projects, tasks and events from the backend and replace
the local JSON files with what the backend returns. Pulls run in
dependency order so references never dangle; a failing pull leaves the
remaining local collections untouched.`,
	RunE: runPull,
}

func runPull(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireRemote(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Println("Pulling from backend...")
	if err := app.Orch.InitialPull(ctx); err != nil {
		return fmt.Errorf("pull failed: %w", err)
	}

	fmt.Printf("✓ Pulled %d tags, %d projects, %d tasks, %d events\n",
		app.Tags.Len(), app.Projects.Len(), app.Tasks.Len(), app.Events.Len())
	return nil
}
