package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chatflow",
	Short: "Chatflow is a patch-based workflow graph editor engine",
	Long: `Chatflow maintains an automation workflow as a directed graph of typed
steps, edited through atomic patches from a canvas, chat planner or forms.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("file", "", "Graph document to load (JSON or YAML)")
}
