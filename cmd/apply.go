package cmd

import (
	"os"

	"labelsync/labels"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply report.json",
	Short: "Apply a report stored as a json file",
	Args:  cobra.ExactArgs(1),
	RunE:  runApply,
}

func loadReport(path string) ([]labels.LabelDiff, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return labels.ReadReport(file)
}

func runApply(cmd *cobra.Command, args []string) error {
	if !actions.Any() {
		return errNoAction
	}

	diffs, err := loadReport(args[0])
	if err != nil {
		return err
	}

	client, err := loadClient(cmd.Context(), true)
	if err != nil {
		return err
	}

	return applyDiffs(cmd.Context(), cmd, client, diffs)
}

func init() {
	addActionFlags(applyCmd)

	rootCmd.AddCommand(applyCmd)
}
