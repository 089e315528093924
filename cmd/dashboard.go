package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/certprep/internal/catalog"
	"github.com/abhisek/certprep/internal/stats"
	"github.com/abhisek/certprep/internal/store"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print readiness and weakest categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		examVal, _ := cmd.Flags().GetString("exam")
		minAttempts, _ := cmd.Flags().GetInt("min-attempts")

		var name string
		if examVal != "" {
			e, ok := catalog.Lookup(examVal)
			if !ok {
				return fmt.Errorf("unknown exam %q", examVal)
			}
			name = e.Name
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		results, err := s.ResultRepo().List(ctx, store.QueryOpts{Exam: name})
		if err != nil {
			return fmt.Errorf("list results: %w", err)
		}
		cats, err := s.ResultRepo().CategoryStats(ctx, name)
		if err != nil {
			return fmt.Errorf("category stats: %w", err)
		}

		title := name
		if title == "" {
			title = "All exams"
		}
		fmt.Println(title)
		fmt.Println(strings.Repeat("─", 60))

		sum := stats.Summarize(results)
		if sum.Attempts == 0 {
			fmt.Println("No attempts yet.")
			return nil
		}
		fmt.Printf("Readiness: %5.1f  %s\n", stats.Readiness(results), bar(stats.Readiness(results), 30))
		fmt.Printf("Attempts:  %d (%d timed out)\n", sum.Attempts, sum.TimedOut)
		fmt.Printf("Average:   %.1f%%\n", sum.Average)
		fmt.Printf("Best:      %.1f%%\n", sum.Best)
		fmt.Printf("Latest:    %.1f%%\n", sum.Latest)

		weak := stats.Weaknesses(cats, minAttempts)
		fmt.Println()
		fmt.Println("Weakest categories")
		fmt.Println(strings.Repeat("─", 60))
		if len(weak) == 0 {
			fmt.Printf("Answer at least %d questions in a category to rank it.\n", minAttempts)
			return nil
		}
		for _, c := range weak {
			fmt.Printf("%-28s  %4d/%-4d  %5.1f%%  %s\n",
				truncate(c.Category, 28), c.Correct, c.Answered, c.Accuracy(), bar(c.Accuracy(), 15))
		}
		return nil
	},
}

// bar renders pct (0-100) as a block bar of width cells.
func bar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func init() {
	dashboardCmd.Flags().StringP("exam", "e", "", "Limit to one exam ID or name")
	dashboardCmd.Flags().Int("min-attempts", stats.DefaultMinAttempts, "Answers a category needs before it is ranked")
}
