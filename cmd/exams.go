package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/certprep/internal/catalog"
	"github.com/abhisek/certprep/internal/exam"
	"github.com/abhisek/certprep/internal/questions"
)

var examsCmd = &cobra.Command{
	Use:   "exams",
	Short: "List the available exams",
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		printExams(os.Stdout, questions.NewStaticSource(0), verbose)
	},
}

// printExams writes the catalog with the size of each built-in question bank.
func printExams(w io.Writer, bank *questions.StaticSource, verbose bool) {
	fmt.Fprintf(w, "%-8s  %-36s  %-6s  %9s  %7s  %5s\n", "ID", "Name", "Body", "Questions", "Minutes", "Bank")
	fmt.Fprintln(w, strings.Repeat("─", 83))
	for _, e := range catalog.All() {
		fmt.Fprintf(w, "%-8s  %-36s  %-6s  %9d  %7d  %5d\n",
			e.ID, truncate(e.Name, 36), e.Body, e.QuestionCount,
			e.TimeLimitSecs(exam.ModeExam, 0)/60, bank.Available(e.ID))
		if verbose {
			if e.Description != "" {
				fmt.Fprintf(w, "          %s\n", e.Description)
			}
			fmt.Fprintf(w, "          Categories: %s\n\n", strings.Join(e.Categories, ", "))
		}
	}
}

func init() {
	examsCmd.Flags().BoolP("verbose", "v", false, "Show descriptions and categories")
}
