package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/website1975/vatly12CTST/internal/screens/study"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the saved API key and the help flag",
	Long: `Remove the saved API key, the "help shown" flag and the last opened lesson.

With --all the whole database, including quiz history and the LLM request
log, is deleted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}

		if all {
			dbPath, err := resolveDBPath(e.cfg)
			e.Close()
			if err != nil {
				return fmt.Errorf("resolve database path: %w", err)
			}
			for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
				if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("remove %s: %w", p, err)
				}
			}
			fmt.Println("Deleted", dbPath)
			return nil
		}
		defer e.Close()

		ctx := cmd.Context()
		if err := e.creds.Clear(ctx); err != nil {
			return err
		}
		if err := e.creds.ResetHelp(ctx); err != nil {
			return fmt.Errorf("reset help flag: %w", err)
		}
		if err := e.store.SettingsRepo().Delete(ctx, study.KeyLastLesson); err != nil {
			return err
		}
		fmt.Println("Saved key, help flag and last lesson cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Delete the database as well")
}
