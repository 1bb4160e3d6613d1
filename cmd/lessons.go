package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/website1975/vatly12CTST/internal/curriculum"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List the chapters and lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		n := 0
		for _, ch := range curriculum.All() {
			fmt.Println(ch.Title)
			fmt.Println(strings.Repeat("─", 72))
			for _, l := range ch.Lessons {
				fmt.Printf("  %-6s  %s\n", l.ID, l.Title)
				n++
			}
			fmt.Println()
		}
		fmt.Printf("%d lessons\n", n)
		return nil
	},
}
