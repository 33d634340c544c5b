package cmd

import (
	"fmt"
	"strings"

	"labelsync/report"
	"labelsync/source"
	"labelsync/sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report namespace[/repo]",
	Short: "Report the current state of the labels",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

var sourcePath string
var renameAlias bool
var requireOptional bool
var reportFormat string
var keepGoing bool
var concurrency int

func compareOptions() sync.Options {
	options := sync.Options{KeepGoing: keepGoing, Concurrency: concurrency}
	options.RenameAlias = renameAlias
	options.RequireOptional = requireOptional
	return options
}

func runReport(cmd *cobra.Command, args []string) error {
	target, err := parseTarget(args[0])
	if err != nil {
		return err
	}

	specs, err := source.LoadFile(sourcePath)
	if err != nil {
		return err
	}

	client, err := loadClient(cmd.Context(), false)
	if err != nil {
		return err
	}

	diffs, compareErr := sync.Compare(cmd.Context(), client, specs, target, compareOptions())
	if compareErr != nil && len(diffs) == 0 {
		return compareErr
	}

	log.Debug().Str("target", target.String()).Int("repositories", len(diffs)).Msg("Rendering report")

	err = report.Render(cmd.OutOrStdout(), reportFormat, diffs)
	if err != nil {
		return err
	}

	return compareErr
}

func addCompareFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&sourcePath, "source", "s", "", "Path to the label source (json or yaml file)")
	_ = cmd.MarkFlagRequired("source")
	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "Continue with the other repositories when one cannot be fetched")
	cmd.Flags().IntVarP(&concurrency, "jobs", "j", 0, "Number of repositories fetched in parallel (default: number of CPUs, at most 8)")
}

func init() {
	addCompareFlags(reportCmd)
	reportCmd.Flags().BoolVarP(&renameAlias, "alias", "a", false, "List aliases as a modification")
	reportCmd.Flags().BoolVarP(&requireOptional, "optional", "o", false, "List optional labels as required")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", report.FormatMarkdown,
		fmt.Sprintf("Output format (%s)", strings.Join(report.Formats, ", ")))

	rootCmd.AddCommand(reportCmd)
}
