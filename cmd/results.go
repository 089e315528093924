package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/certprep/internal/catalog"
	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/store"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Inspect past exam results",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent results",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		examVal, _ := cmd.Flags().GetString("exam")

		opts := store.QueryOpts{Limit: limit}
		if examVal != "" {
			e, ok := catalog.Lookup(examVal)
			if !ok {
				return fmt.Errorf("unknown exam %q", examVal)
			}
			opts.Exam = e.Name
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		list, err := s.ResultRepo().List(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("list results: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No results yet.")
			return nil
		}

		fmt.Printf("%-36s  %-16s  %-24s  %-8s  %7s  %7s  %s\n",
			"ID", "Completed", "Exam", "Mode", "Score", "Pct", "Time")
		fmt.Println(strings.Repeat("─", 118))
		for _, r := range list {
			note := ""
			if r.TimedOut {
				note = " (timed out)"
			}
			fmt.Printf("%-36s  %-16s  %-24s  %-8s  %3d/%-3d  %6.1f%%  %s%s\n",
				r.ID,
				r.CompletedAt.Local().Format("2006-01-02 15:04"),
				truncate(r.ExamName, 24),
				r.Mode,
				r.Score, r.Total,
				r.Percentage,
				formatSecs(r.TimeUsed),
				note,
			)
		}
		return nil
	},
}

var resultsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one result with every answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		r, err := s.ResultRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get result: %w", err)
		}
		if r == nil {
			return fmt.Errorf("result %s not found", args[0])
		}
		printResult(r)
		return nil
	},
}

var resultsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.ResultRepo().Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete result: %w", err)
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}

func printResult(r *exam.QuizResult) {
	fmt.Printf("%s  (%s mode)\n", r.ExamName, r.Mode)
	fmt.Printf("Score:     %d/%d  %.1f%%\n", r.Score, r.Total, r.Percentage)
	fmt.Printf("Started:   %s\n", r.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Completed: %s\n", r.CompletedAt.Local().Format("2006-01-02 15:04:05"))
	used := formatSecs(r.TimeUsed)
	if r.TimeLimit > 0 {
		used += " of " + formatSecs(r.TimeLimit)
	}
	fmt.Printf("Time:      %s\n", used)
	if r.TimedOut {
		fmt.Println("Submitted automatically when time ran out.")
	}
	fmt.Println(strings.Repeat("─", 72))

	for _, a := range r.Answers {
		mark := "\033[32m✓\033[0m"
		if !a.IsCorrect {
			mark = "\033[31m✗\033[0m"
		}
		flag := ""
		if a.Flagged {
			flag = " [flagged]"
		}
		fmt.Printf("%s %3d. %s%s\n", mark, a.Index+1, a.Prompt, flag)
		fmt.Printf("       Your answer: %s\n", a.UserAnswer)
		if !a.IsCorrect {
			fmt.Printf("       Correct:     %s\n", a.CorrectAnswer)
		}
		if a.Explanation != "" {
			fmt.Printf("       %s\n", a.Explanation)
		}
	}
}

// formatSecs renders seconds as m:ss, or h:mm:ss past an hour.
func formatSecs(secs int) string {
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func init() {
	resultsListCmd.Flags().IntP("limit", "n", 20, "Number of results to show")
	resultsListCmd.Flags().StringP("exam", "e", "", "Filter by exam ID or name")

	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsViewCmd)
	resultsCmd.AddCommand(resultsDeleteCmd)
}
