package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pders01/feedquiz/internal/search"
	"github.com/pders01/feedquiz/internal/storage"
)

var questionCmd = &cobra.Command{
	Use:   "question",
	Short: "Inspect stored quiz questions",
}

var questionShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Render a stored question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		q, ok, err := a.store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("question %s not found", args[0])
		}

		hide, _ := cmd.Flags().GetBool("hide-answer")
		out, err := renderQuestion(q, !hide, 80)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var questionSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the archive of generated questions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		idx, err := a.openIndex()
		if err != nil {
			return err
		}
		if idx == nil {
			return errors.New("question index is disabled; set search.index_path")
		}

		limit, _ := cmd.Flags().GetInt("limit")
		results, err := idx.Search(strings.Join(args, " "), limit)
		if err != nil {
			return err
		}
		printResults(cmd.OutOrStdout(), results)
		return nil
	},
}

var (
	idStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B949E"))
)

func printResults(w io.Writer, results []search.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No matching questions")
		return
	}
	for _, r := range results {
		fmt.Fprintf(w, "%s  %s\n", idStyle.Render(r.ID), r.QuestionText)
		fmt.Fprintf(w, "    %s\n", mutedStyle.Render(r.ArticleURL))
	}
}

var headingStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#4ECDC4")).
	MarginLeft(2)

// questionMarkdown lays a question out as Markdown.
func questionMarkdown(q *storage.QuizQuestion, withAnswer bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", q.QuestionText)
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
	}
	if withAnswer {
		fmt.Fprintf(&b, "\n**Answer:** %d. %s\n\n", q.CorrectOptionIndex, q.CorrectOption())
		fmt.Fprintf(&b, "> %s\n\n", q.ExplanationCorrect)
		fmt.Fprintf(&b, "**Other options:** %s\n", q.ExplanationOthers)
	}
	fmt.Fprintf(&b, "\n---\n\n*Source:* <%s>  \n*Created:* %s\n", q.ArticleURL, q.CreatedAt.Format("2006-01-02 15:04 MST"))
	return b.String()
}

func renderQuestion(q *storage.QuizQuestion, withAnswer bool, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	body, err := r.Render(questionMarkdown(q, withAnswer))
	if err != nil {
		return "", fmt.Errorf("rendering question: %w", err)
	}
	return headingStyle.Render("Question "+q.ID) + "\n" + body, nil
}

func init() {
	questionShowCmd.Flags().Bool("hide-answer", false, "Do not print the answer and explanations")
	questionSearchCmd.Flags().Int("limit", search.DefaultLimit, "Maximum number of results")
	questionCmd.AddCommand(questionShowCmd)
	questionCmd.AddCommand(questionSearchCmd)
}
