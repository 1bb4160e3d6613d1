package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/website1975/vatly12CTST/internal/credential"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the saved API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set <value>",
	Short: "Validate and save an API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.creds.ValidateFormat(args[0]); err != nil {
			if errors.Is(err, credential.ErrInvalidFormat) {
				return fmt.Errorf("%w: expected prefix %q", err, e.creds.Prefix())
			}
			return err
		}
		if err := e.creds.Save(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Saved", credential.Mask(e.creds.Read(cmd.Context())))
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the saved API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.creds.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Saved key removed.")
		return nil
	},
}

var keyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which API key is in use",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		fmt.Printf("Provider:  %s\n", e.cfg.LLM.Provider)
		fmt.Printf("Source:    %s\n", e.creds.Source(ctx))
		if v := e.creds.Read(ctx); v != "" {
			fmt.Printf("Key:       %s\n", credential.Mask(v))
		}
		fmt.Printf("Usable:    %v\n", e.creds.IsUsable(ctx))
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyClearCmd)
	keyCmd.AddCommand(keyStatusCmd)
}
