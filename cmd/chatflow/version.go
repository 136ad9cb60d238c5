package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	chatflow "github.com/markdavemanansala/Chat-To-Flow-sub001"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of chatflow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chatflow version %s\n", strings.TrimSpace(chatflow.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
