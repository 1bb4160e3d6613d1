package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/website1975/vatly12CTST/internal/config"
	"github.com/website1975/vatly12CTST/internal/content"
	"github.com/website1975/vatly12CTST/internal/credential"
	"github.com/website1975/vatly12CTST/internal/llm"
	"github.com/website1975/vatly12CTST/internal/logging"
	"github.com/website1975/vatly12CTST/internal/store"
	"github.com/website1975/vatly12CTST/internal/telemetry"
)

// defaultAPIKey is the credential baked in at build time via
// -ldflags "-X github.com/website1975/vatly12CTST/cmd.defaultAPIKey=...".
var defaultAPIKey = ""

var rootCmd = &cobra.Command{
	Use:   "vatly12",
	Short: "Vật Lý 12 (Chân Trời Sáng Tạo) study aid",
	Long: "vatly12 is a terminal study companion for the grade 12 physics textbook.\n" +
		"It generates theory, quizzes, lab scenarios and tutoring answers for every lesson.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides VATLY12_DB env var)")
	pf.String("config", "", "Path to config file")
	pf.String("provider", "", "LLM provider: gemini, anthropic, openai, openrouter or ollama")
	pf.String("model", "", "Model name (defaults per provider)")
	pf.BoolP("verbose", "v", false, "Log to stderr (non-interactive commands)")

	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// env holds everything a command needs after startup.
type env struct {
	cfg      *config.Config
	log      *logging.Logger
	store    *store.Store
	creds    *credential.Store
	shutdown telemetry.Shutdown
}

// loadConfig reads the config with the persistent flags applied.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var o config.Overrides
	o.ConfigFile, _ = cmd.Flags().GetString("config")
	o.DBPath, _ = cmd.Flags().GetString("db")
	o.Provider, _ = cmd.Flags().GetString("provider")
	o.Model, _ = cmd.Flags().GetString("model")
	return config.Load(o)
}

// resolveDBPath returns the configured database path (--db flag, then
// db.path), falling back to VATLY12_DB and the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if p := cfg.DB.Path; p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// setup loads config, opens the log, telemetry and store, and builds the
// credential store. interactive keeps log output away from the terminal.
func setup(cmd *cobra.Command, interactive bool) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose && !interactive {
		cfg.Log.File = logging.Stderr
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := telemetry.Init(ctx, cfg.Telemetry, version, log.Out, log.Logger)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		_ = shutdown(ctx)
		log.Close()
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		_ = shutdown(ctx)
		log.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Debug("store opened", zap.String("path", dbPath))

	provider := cfg.LLM.Provider
	def := defaultAPIKey
	if def == "" {
		def = llm.EnvKey(provider)
	}
	creds := credential.New(st.SettingsRepo(),
		credential.WithDefault(def),
		credential.WithPrefix(llm.KeyPrefix(provider)),
		credential.WithLogger(log.Logger),
	)

	return &env{cfg: cfg, log: log, store: st, creds: creds, shutdown: shutdown}, nil
}

// contentClient builds the content client on top of the configured provider.
func (e *env) contentClient() *content.Client {
	llmCfg := e.cfg.LLMSettings()
	events := e.store.EventRepo()
	logger := e.log.Logger

	factory := func(ctx context.Context, apiKey string) (llm.Provider, error) {
		return llm.NewProvider(ctx, llmCfg, apiKey, llm.Deps{EventRepo: events, Logger: logger})
	}

	cfg := content.DefaultConfig()
	cfg.NeedsKey = llm.NeedsKey(llmCfg.Provider)
	cfg.MaxTokens = e.cfg.LLM.MaxTokens
	return content.New(e.creds, factory, cfg, content.WithLogger(logger))
}

// Close releases the store, flushes spans and closes the log.
func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("close store", zap.Error(err))
	}
	if err := e.shutdown(context.Background()); err != nil {
		e.log.Warn("telemetry shutdown", zap.Error(err))
	}
	if err := e.log.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "close log:", err)
	}
}
