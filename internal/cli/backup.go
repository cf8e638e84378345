package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Upsert local data to the backend",
	Long: `Push all four local collections to the backend as id-keyed upserts.
Rows that only exist remotely are left alone; use 'assistant replace'
to make the backend an exact mirror of local data.`,
	RunE: runBackup,
}

func runBackup(cmd *cobra.Command, args []string) error {
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

	fmt.Println("Backing up to backend...")
	if err := app.Orch.IncrementalSync(ctx); err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Printf("✓ Backed up %d tags, %d projects, %d tasks, %d events\n",
		app.Tags.Len(), app.Projects.Len(), app.Tasks.Len(), app.Events.Len())
	return nil
}
