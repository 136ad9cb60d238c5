package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	chatflow "github.com/markdavemanansala/Chat-To-Flow-sub001"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/internal/logging"
	mcpAdapter "github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/adapters/mcp"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/planner"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long: `Exposes the graph engine as MCP tools (apply_patch, propose, undo, redo,
validate_graph, get_summary) for chat hosts. Logs go to stderr; stdout
carries the protocol.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		name, _ := cmd.Flags().GetString("name")

		store := chatflow.New(name,
			chatflow.WithLogger(logging.New(slog.LevelWarn)),
			chatflow.WithPlanner(planner.NewRuleBased()),
		)
		defer store.Close()

		if file != "" {
			g, err := loadDocument(file)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading graph: %v\n", err)
				os.Exit(1)
			}
			store.Load(g)
		}

		if err := mcpAdapter.NewServer(store).ServeStdio(); err != nil {
			fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	mcpCmd.Flags().String("name", "untitled", "Name for a fresh workflow when no file is given")
	rootCmd.AddCommand(mcpCmd)
}
