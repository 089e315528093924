package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/certprep/internal/app"
	"github.com/abhisek/certprep/internal/logger"
)

// runApp opens the store, builds dependencies, and launches the TUI.
// Logs go to a file while the TUI owns the terminal.
func runApp(cmd *cobra.Command, play *app.PlayRequest) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}

	logPath := cfg.Log.File
	if logPath == "" {
		logPath = filepath.Join(filepath.Dir(dbPath), "certprep.log")
	}
	var out io.Writer = io.Discard
	if f, err := logger.OpenFile(logPath); err == nil {
		defer f.Close()
		out = f
	}
	logger.Setup(cfg.Log.Level, "json", out)

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	source, note, err := buildSource(ctx, st.EventRepo())
	if err != nil {
		return err
	}

	log.Info().Bool("play", play != nil).Msg("starting TUI")
	return app.Run(app.Options{
		Source:     source,
		Results:    st.ResultRepo(),
		Snapshots:  st.SnapshotRepo(),
		SourceNote: note,
		Play:       play,
		SkipSplash: play != nil,
	})
}
