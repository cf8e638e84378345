package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kurtulus-bartu/personal-assistant/internal/syncer"
)

var replaceCmd = &cobra.Command{
	Use:   "replace",
	Short: "Replace backend data with the local copy",
	Long: `Wipe the backend tables and re-upload everything from the local JSON
files. Deletes run child-first and uploads parent-first so foreign keys
never dangle. Refuses to run when every local collection is empty.`,
	RunE: runReplace,
}

var replaceYes bool

func init() {
	replaceCmd.Flags().BoolVarP(&replaceYes, "yes", "y", false, "Do not ask for confirmation")
}

func runReplace(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireRemote(); err != nil {
		return err
	}

	if !replaceYes && app.Config.ConfirmReplace {
		fmt.Printf("This deletes ALL backend data and replaces it with local data. Continue? (y/N): ")
		var response string
		_, _ = fmt.Scanln(&response)
		if strings.ToLower(response) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Println("⚠️  Replacing backend data with local data...")
	if err := app.Orch.ReplaceRemoteWithLocal(ctx); err != nil {
		if errors.Is(err, syncer.ErrNothingToReplace) {
			return fmt.Errorf("all local collections are empty; refusing to wipe the backend")
		}
		return fmt.Errorf("replace failed: %w", err)
	}

	fmt.Printf("✓ Backend now mirrors local data: %d tags, %d projects, %d tasks, %d events\n",
		app.Tags.Len(), app.Projects.Len(), app.Tasks.Len(), app.Events.Len())
	return nil
}
