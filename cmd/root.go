package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/certprep/internal/config"
	"github.com/abhisek/certprep/internal/logger"
	"github.com/abhisek/certprep/internal/store"
)

// cfg is loaded once per invocation in PersistentPreRunE.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "certprep",
	Short: "Practice exams for professional certifications",
	Long: `CertPrep runs timed and untimed practice exams for inspection and
welding certifications (API 510, API 570, API 653, CWI and more), in the
terminal or over a JSON API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(file)
		if err != nil {
			return err
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			loaded.Log.Level = lvl
		}
		cfg = loaded

		logger.Setup(cfg.Log.Level, cfg.Log.Format, nil)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CERTPREP_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/certprep/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(examsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file, then CERTPREP_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the database chosen by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	log.Debug().Str("path", dbPath).Msg("database opened")
	return st, nil
}
