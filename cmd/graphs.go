package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tutorloop/tutorloop/internal/decompose"
)

var graphsCmd = &cobra.Command{
	Use:   "graphs",
	Short: "Inspect builtin topic trees",
}

var graphsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List curated decomposition topics",
	Run: func(cmd *cobra.Command, args []string) {
		for _, topic := range decompose.DefaultRegistry().Topics() {
			fmt.Println(topic)
		}
	},
}

var graphsShowCmd = &cobra.Command{
	Use:   "show <goal>",
	Short: "Decompose a goal and print its concept graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := decompose.New().Decompose(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%d concepts)\n\n", g.Goal, len(g.Nodes))
		fmt.Printf("%-32s  %-10s  %-4s  %s\n", "Concept", "Difficulty", "Min", "Prerequisites")
		for _, concept := range g.Concepts() {
			n := g.Nodes[concept]
			prereqs := "-"
			if len(n.Prerequisites) > 0 {
				prereqs = fmt.Sprintf("%v", n.Prerequisites)
			}
			fmt.Printf("%-32s  %-10.1f  %-4d  %s\n", concept, n.DifficultyScore, n.EstimatedTimeMinutes, prereqs)
		}
		return nil
	},
}

func init() {
	graphsCmd.AddCommand(graphsListCmd)
	graphsCmd.AddCommand(graphsShowCmd)
}
