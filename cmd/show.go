package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/website1975/vatly12CTST/internal/content"
	"github.com/website1975/vatly12CTST/internal/curriculum"
	"github.com/website1975/vatly12CTST/internal/ui/components"
)

const showWidth = 80

var showCmd = &cobra.Command{
	Use:   "show <lesson-id>",
	Short: "Generate lesson content without the TUI",
	Long: `Generate theory, a quiz and a lab scenario for one lesson and print them.

With no selection flags all three are generated, concurrently.
Run "vatly12 lessons" for the list of lesson IDs.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().Bool("theory", false, "Generate the theory text")
	showCmd.Flags().Bool("quiz", false, "Generate the quiz")
	showCmd.Flags().Bool("simulation", false, "Generate the lab scenario")
}

func runShow(cmd *cobra.Command, args []string) error {
	lesson, ok := curriculum.Find(args[0])
	if !ok {
		return fmt.Errorf("unknown lesson %q (see `vatly12 lessons`)", args[0])
	}

	theory, _ := cmd.Flags().GetBool("theory")
	quiz, _ := cmd.Flags().GetBool("quiz")
	sim, _ := cmd.Flags().GetBool("simulation")
	if !theory && !quiz && !sim {
		theory, quiz, sim = true, true, true
	}

	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	client := e.contentClient()
	ctx := cmd.Context()
	if !client.Configured(ctx) {
		return fmt.Errorf("no usable API key: run `vatly12 key set <value>`")
	}

	var (
		theoryText string
		questions  []content.QuizQuestion
		simulation *content.SimulationData
	)

	g, gctx := errgroup.WithContext(ctx)
	if theory {
		g.Go(func() error {
			theoryText = client.GenerateTheory(gctx, lesson)
			return nil
		})
	}
	if quiz {
		g.Go(func() error {
			questions = client.GenerateQuiz(gctx, lesson)
			return nil
		})
	}
	if sim {
		g.Go(func() error {
			simulation = client.GenerateSimulation(gctx, lesson)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sep := strings.Repeat("─", showWidth)
	fmt.Println(lesson.Chapter + " · " + lesson.Title)

	if theory {
		fmt.Println(sep)
		fmt.Println(components.Markdown(theoryText, showWidth))
	}

	if quiz {
		fmt.Println(sep)
		if len(questions) == 0 {
			fmt.Println("Chưa có dữ liệu câu hỏi.")
		}
		for i, q := range questions {
			fmt.Printf("%d. %s\n", i+1, q.Question)
			for j, opt := range q.Options {
				mark := " "
				if j == q.CorrectAnswer {
					mark = "*"
				}
				fmt.Printf("   %s %c) %s\n", mark, 'a'+rune(j), opt)
			}
			if q.Explanation != "" {
				fmt.Printf("   → %s\n", q.Explanation)
			}
			fmt.Println()
		}
	}

	if sim {
		fmt.Println(sep)
		if simulation == nil {
			fmt.Println("Không có dữ liệu mô phỏng.")
			return nil
		}
		fmt.Println(simulation.Title)
		fmt.Println(simulation.Description)
		fmt.Println()
		fmt.Println(components.Markdown(simulation.Scenario, showWidth))
		fmt.Println()
		fmt.Println("Hình minh hoạ:", simulation.ImageURL)
	}
	return nil
}
