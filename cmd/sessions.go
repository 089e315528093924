package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/certprep/internal/cache"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved, resumable sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		list, err := s.SnapshotRepo().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No saved sessions.")
			return nil
		}

		var sc *cache.SnapshotCache
		if cfg.Redis.URL != "" {
			rdb, err := cache.Connect(cmd.Context(), cfg.Redis.URL)
			if err != nil {
				log.Warn().Err(err).Msg("redis unavailable, cache column left empty")
			} else {
				defer rdb.Close()
				sc = cache.NewSnapshotCache(rdb, cache.DefaultTTL)
			}
		}

		fmt.Printf("%-36s  %-16s  %-24s  %-8s  %8s  %-9s  %s\n",
			"ID", "Saved", "Exam", "Mode", "Answered", "Time left", "Cached")
		fmt.Println(strings.Repeat("─", 120))
		for _, ss := range list {
			left := "untimed"
			if ss.TimeLeft >= 0 {
				left = formatSecs(ss.TimeLeft)
			}
			fmt.Printf("%-36s  %-16s  %-24s  %-8s  %4d/%-3d  %-9s  %s\n",
				ss.ID,
				ss.SavedAt.Local().Format("2006-01-02 15:04"),
				truncate(ss.ExamName, 24),
				ss.Mode,
				ss.Answered, ss.Total,
				left,
				cacheExpiry(cmd.Context(), sc, ss.ID),
			)
		}
		return nil
	},
}

// cacheExpiry describes how long the Redis copy of a session has left.
func cacheExpiry(ctx context.Context, sc *cache.SnapshotCache, id string) string {
	if sc == nil {
		return "-"
	}
	d, err := sc.TTL(ctx, id)
	if err != nil {
		log.Debug().Err(err).Str("session", id).Msg("cache ttl lookup failed")
		return "?"
	}
	if d == 0 {
		return "expired"
	}
	return d.Truncate(time.Second).String()
}

var sessionsDiscardCmd = &cobra.Command{
	Use:   "discard <id>",
	Short: "Delete a saved session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SnapshotRepo().Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("discard session: %w", err)
		}
		fmt.Println("Discarded", args[0])
		return nil
	},
}

var sessionsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Keep only the most recent saved sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		if keep < 0 {
			return fmt.Errorf("keep must not be negative")
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SnapshotRepo().Prune(cmd.Context(), keep); err != nil {
			return fmt.Errorf("prune sessions: %w", err)
		}
		return nil
	},
}

func init() {
	sessionsPruneCmd.Flags().Int("keep", 5, "Number of saved sessions to keep")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsDiscardCmd)
	sessionsCmd.AddCommand(sessionsPruneCmd)
}
