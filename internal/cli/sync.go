package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kurtulus-bartu/personal-assistant/internal/syncer"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push local data to the backend, guarding against overwrites",
	Long: `Push local data to the backend after checking for id overlap.

When any local id already exists remotely the push is refused, because a
replace would overwrite rows this device never saw. Re-run with --force
to replace the backend anyway. Intended for first-time bootstrap of an
empty or fresh backend; for routine pushes use 'assistant backup'.`,
	RunE: runSyncPush,
}

var syncForce bool

func init() {
	syncCmd.Flags().BoolVarP(&syncForce, "force", "f", false, "Replace the backend even when ids overlap")
}

func runSyncPush(cmd *cobra.Command, args []string) error {
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

	if syncForce {
		fmt.Println("⚠️  Forcing push (replacing backend data)...")
	} else {
		fmt.Println("🔄 Checking backend before push...")
	}

	if err := app.Orch.SafeSync(ctx, syncForce); err != nil {
		if errors.Is(err, syncer.ErrConflict) {
			return fmt.Errorf("push refused: %v", err)
		}
		if errors.Is(err, syncer.ErrNothingToReplace) {
			return fmt.Errorf("all local collections are empty; nothing to push")
		}
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Printf("✓ Sync complete! Backend now holds %d tags, %d projects, %d tasks, %d events\n",
		app.Tags.Len(), app.Projects.Len(), app.Tasks.Len(), app.Events.Len())
	return nil
}
