package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/internal/presentation/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph FILE",
	Short: "Render a graph document as a Mermaid flowchart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		g, err := loadDocument(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(graph.GenerateMermaid(g))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
