package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/certprep/internal/catalog"
	"github.com/abhisek/certprep/internal/questions"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Validate and print a JSON question bank (no database)",
	Long: `Validate a question bank in the same JSON format as the built-in
banks and print it. Reads stdin when no file is given or the file is "-".

This is a stateless authoring tool: nothing is stored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Bool("answers", false, "Show answers, references and explanations")
}

func runPreview(cmd *cobra.Command, args []string) error {
	showAnswers, _ := cmd.Flags().GetBool("answers")

	var r io.Reader = cmd.InOrStdin()
	name := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open question bank: %w", err)
		}
		defer f.Close()
		r, name = f, args[0]
	}

	bank, err := questions.ParseQuestions(r)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	out := cmd.OutOrStdout()
	if bank.Exam != "" {
		if e, ok := catalog.Lookup(bank.Exam); ok {
			fmt.Fprintf(out, "Exam: %s (%s)\n", e.Name, e.Body)
		} else {
			fmt.Fprintf(out, "Exam: %s (not in the catalog)\n", bank.Exam)
		}
	}
	fmt.Fprintf(out, "%d valid questions\n\n", len(bank.Questions))

	for i, q := range bank.Questions {
		fmt.Fprintf(out, "── Question %d/%d", i+1, len(bank.Questions))
		if q.Category != "" {
			fmt.Fprintf(out, "  [%s]", q.Category)
		}
		fmt.Fprintln(out, " ──")
		fmt.Fprintln(out, q.Prompt)
		for j, c := range q.Choices() {
			marker := " "
			if showAnswers && c == q.Answer {
				marker = "*"
			}
			fmt.Fprintf(out, " %s %d) %s\n", marker, j+1, c)
		}
		if showAnswers {
			if q.Reference != "" {
				fmt.Fprintf(out, "Reference: %s\n", q.Reference)
			}
			if q.Quote != "" {
				fmt.Fprintf(out, "Quote: %q\n", q.Quote)
			}
			if q.Explanation != "" {
				fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}
