package cmd

import (
	"context"
	"errors"
	"os"

	"labelsync/labels"
	"labelsync/source"
	"labelsync/sync"
	"labelsync/vcs"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var syncCmd = &cobra.Command{
	Use:   "sync namespace[/repo]",
	Short: "Sync labels with a target",
	Args:  cobra.ExactArgs(1),
	RunE:  runSync,
}

var actions sync.Actions

func addActionFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&actions.Create, "create", "c", false, "Create labels")
	cmd.Flags().BoolVarP(&actions.Delete, "delete", "d", false, "Delete labels")
	cmd.Flags().BoolVarP(&actions.Modify, "modify", "m", false, "Modify existing labels")
	cmd.Flags().BoolVarP(&actions.AssumeYes, "assumeyes", "y", false, "Automatically answer yes for all questions")
}

// newApplier prompts on the terminal unless --assumeyes is set.
func newApplier(cmd *cobra.Command, writer vcs.LabelWriter) (*sync.Applier, error) {
	applier := &sync.Applier{
		Writer:  writer,
		Actions: actions,
		Out:     cmd.OutOrStdout(),
	}

	if !actions.AssumeYes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("standard input is not a terminal, pass --assumeyes to apply without confirmation")
		}
		applier.Confirm = sync.NewPrompt(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	return applier, nil
}

func applyDiffs(ctx context.Context, cmd *cobra.Command, client vcs.LabelWriter, diffs []labels.LabelDiff) error {
	applier, err := newApplier(cmd, client)
	if err != nil {
		return err
	}

	return applier.ApplyAll(ctx, diffs)
}

func runSync(cmd *cobra.Command, args []string) error {
	if !actions.Any() {
		return errNoAction
	}

	target, err := parseTarget(args[0])
	if err != nil {
		return err
	}

	specs, err := source.LoadFile(sourcePath)
	if err != nil {
		return err
	}

	client, err := loadClient(cmd.Context(), true)
	if err != nil {
		return err
	}

	diffs, compareErr := sync.Compare(cmd.Context(), client, specs, target, compareOptions())
	if compareErr != nil && len(diffs) == 0 {
		return compareErr
	}

	return errors.Join(applyDiffs(cmd.Context(), cmd, client, diffs), compareErr)
}

func init() {
	addCompareFlags(syncCmd)
	addActionFlags(syncCmd)
	syncCmd.Flags().BoolVarP(&renameAlias, "alias", "a", false, "Rename aliases to the canonical name")
	syncCmd.Flags().BoolVarP(&requireOptional, "optional", "o", false, "Create optional labels")

	rootCmd.AddCommand(syncCmd)
}
