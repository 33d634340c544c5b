package cmd

import (
	"fmt"
	"strings"

	"labelsync/report"

	"github.com/spf13/cobra"
)

var reformatCmd = &cobra.Command{
	Use:   "reformat report.json",
	Short: "Convert a json report into any of the other formats",
	Args:  cobra.ExactArgs(1),
	RunE:  runReformat,
}

var reformatFormat string

func runReformat(cmd *cobra.Command, args []string) error {
	diffs, err := loadReport(args[0])
	if err != nil {
		return err
	}

	return report.Render(cmd.OutOrStdout(), reformatFormat, diffs)
}

func init() {
	reformatCmd.Flags().StringVarP(&reformatFormat, "format", "f", report.FormatMarkdown,
		fmt.Sprintf("Output format (%s)", strings.Join(report.Formats, ", ")))

	rootCmd.AddCommand(reformatCmd)
}
