package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/certprep/internal/app"
	"github.com/abhisek/certprep/internal/catalog"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an exam straight away",
	Example: `  certprep play --exam api-510
  certprep play --exam cwi --mode practice --count 25`,
	RunE: func(cmd *cobra.Command, args []string) error {
		examVal, _ := cmd.Flags().GetString("exam")
		modeVal, _ := cmd.Flags().GetString("mode")
		count, _ := cmd.Flags().GetInt("count")

		e, ok := catalog.Lookup(examVal)
		if !ok {
			return fmt.Errorf("unknown exam %q (see certprep exams)", examVal)
		}
		mode, ok := catalog.ParseMode(modeVal)
		if !ok {
			return fmt.Errorf("invalid mode %q: must be exam or practice", modeVal)
		}
		if count < 1 || count > e.QuestionCount {
			return fmt.Errorf("count must be between 1 and %d, got %d", e.QuestionCount, count)
		}

		return runApp(cmd, &app.PlayRequest{Exam: e, Mode: mode, Count: count})
	},
}

func init() {
	playCmd.Flags().String("exam", "", "Exam ID or name (required)")
	playCmd.Flags().String("mode", "exam", "Mode: exam (timed) or practice")
	playCmd.Flags().Int("count", 10, "Number of questions")
	_ = playCmd.MarkFlagRequired("exam")
}
