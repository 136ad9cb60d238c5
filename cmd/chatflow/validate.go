package main

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/registry"
	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a graph document's topology",
	Long: `Loads a graph document and reports blocking issues (trigger/action
invariants), advisory warnings (orphans, branches) and config lint findings
per node. Exits non-zero when issues are found, so it can gate exports in
scripts; warnings and lint never affect the exit code.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		g, err := loadDocument(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		report := validate.Check(g.Nodes, g.Edges)
		printReport(report, registry.LintGraph(g.Nodes))

		if !report.OK {
			os.Exit(1)
		}
	},
}

func printReport(report domain.Report, lint []domain.Issue) {
	out := termenv.NewOutput(os.Stdout)
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		out = termenv.NewOutput(os.Stdout, termenv.WithProfile(termenv.Ascii))
	}

	if report.OK && len(report.Warnings) == 0 && len(lint) == 0 {
		fmt.Println(out.String("✓ graph is valid").Foreground(out.Color("2")))
		return
	}

	for _, issue := range report.Issues {
		fmt.Println(out.String("✗ " + issue.String()).Foreground(out.Color("1")))
	}
	for _, warning := range report.Warnings {
		fmt.Println(out.String("! " + warning.String()).Foreground(out.Color("3")))
	}
	for _, finding := range lint {
		fmt.Println(out.String("~ " + finding.String()).Foreground(out.Color("3")))
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
