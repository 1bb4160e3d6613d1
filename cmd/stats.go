package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/website1975/vatly12CTST/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz results per lesson and recent attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		events := e.store.EventRepo()

		stats, err := events.QuizStatsByLesson(ctx)
		if err != nil {
			return fmt.Errorf("query quiz stats: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No quiz attempts recorded yet.")
			return nil
		}

		fmt.Println("Quiz Results by Lesson")
		fmt.Println(strings.Repeat("─", 80))
		fmt.Printf("%-6s  %-44s  %8s  %8s  %8s\n", "Lesson", "Title", "Attempts", "Best", "Accuracy")
		fmt.Println(strings.Repeat("─", 80))

		var attempts int
		for _, st := range stats {
			fmt.Printf("%-6s  %-44s  %8d  %8s  %7.0f%%\n",
				st.LessonID, truncate(st.LessonTitle, 44), st.Attempts,
				fmt.Sprintf("%d/%d", st.BestScore, st.Total), st.Accuracy*100)
			attempts += st.Attempts
		}
		fmt.Println(strings.Repeat("─", 80))
		fmt.Printf("%d attempts across %d lessons\n", attempts, len(stats))

		recent, err := events.QueryQuizAttempts(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query quiz attempts: %w", err)
		}

		fmt.Println()
		fmt.Println("Recent Attempts")
		fmt.Println(strings.Repeat("─", 80))
		for _, a := range recent {
			fmt.Printf("%-16s  %-6s  %-44s  %5s\n",
				a.Timestamp.Local().Format("2006-01-02 15:04"),
				a.LessonID, truncate(a.LessonTitle, 44),
				fmt.Sprintf("%d/%d", a.Score, a.Total))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 10, "Number of recent attempts to show")
}
