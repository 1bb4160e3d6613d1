package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/website1975/vatly12CTST/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	e.log.Info("starting",
		zap.String("version", version),
		zap.String("provider", e.cfg.LLM.Provider),
		zap.String("model", e.cfg.LLMSettings().ResolvedModel()),
	)

	return app.Run(app.Options{
		Content:  e.contentClient(),
		Creds:    e.creds,
		Events:   e.store.EventRepo(),
		Settings: e.store.SettingsRepo(),
		Provider: e.cfg.LLM.Provider,
		Logger:   e.log.Logger,
	})
}
