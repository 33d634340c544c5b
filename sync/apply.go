package sync

import (
	"context"
	"errors"
	"fmt"
	"io"

	"labelsync/constants"
	"labelsync/labels"
	"labelsync/report"
	"labelsync/vcs"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Actions selects which parts of a diff are applied.
type Actions struct {
	Create bool
	Delete bool
	Modify bool
	// AssumeYes skips confirmation.
	AssumeYes bool
}

func (actions Actions) Any() bool {
	return actions.Create || actions.Delete || actions.Modify
}

// Confirmer asks whether the change just reported should be applied.
type Confirmer interface {
	Confirm() (bool, error)
}

// Applier turns diffs into label changes on a host.
type Applier struct {
	Writer  vcs.LabelWriter
	Actions Actions
	// Out receives a line per change before it is confirmed. Nil disables it.
	Out     io.Writer
	Confirm Confirmer
}

var ErrAborted = errors.New("aborted")

// Apply applies the selected actions of diff: missing labels are created,
// extra labels deleted and different labels modified, in that order.
// Failing changes are logged and counted; the remaining changes are still
// attempted.
func (applier *Applier) Apply(ctx context.Context, diff labels.LabelDiff) error {
	logger := log.With().Str("namespace", diff.Namespace).Str("repository", diff.Repository).Logger()

	changes := []report.Change{}
	if applier.Actions.Create {
		for _, spec := range diff.Missing {
			changes = append(changes, report.Change{Action: report.ActionCreate, Label: spec.Label})
		}
	}
	if applier.Actions.Delete {
		for _, label := range diff.Extra {
			changes = append(changes, report.Change{Action: report.ActionDelete, Label: label})
		}
	}
	if applier.Actions.Modify {
		for _, delta := range diff.Diff {
			changes = append(changes, report.Change{Action: report.ActionModify, Delta: delta})
		}
	}

	errCount := 0
	for _, change := range changes {
		if applier.Out != nil {
			report.Terminal(applier.Out, diff, change)
		}

		if !applier.Actions.AssumeYes && applier.Confirm != nil {
			ok, err := applier.Confirm.Confirm()
			if err != nil {
				return fmt.Errorf("%w: %v", ErrAborted, err)
			}
			if !ok {
				logger.Debug().Str("action", string(change.Action)).Msg("Skipped by user")
				continue
			}
		}

		err := applier.applyChange(ctx, logger, diff, change)
		if err != nil {
			logger.Error().Err(err).Str("action", string(change.Action)).Send()
			errCount += 1
		}
	}

	if errCount > 0 {
		return fmt.Errorf("%d label changes failed in %s/%s", errCount, diff.Namespace, diff.Repository)
	}

	return nil
}

func (applier *Applier) applyChange(ctx context.Context, logger zerolog.Logger, diff labels.LabelDiff, change report.Change) error {
	dryRun := constants.IsDryRun(ctx)

	switch change.Action {
	case report.ActionCreate:
		if dryRun {
			logger.Info().Str("label", change.Label.Name).Msg("Would create the label, but dry-run mode is enabled")
			return nil
		}
		return applier.Writer.CreateLabel(ctx, diff.Namespace, diff.Repository, change.Label)

	case report.ActionDelete:
		if dryRun {
			logger.Info().Str("label", change.Label.Name).Msg("Would delete the label, but dry-run mode is enabled")
			return nil
		}
		return applier.Writer.DeleteLabel(ctx, diff.Namespace, diff.Repository, change.Label.Name)

	case report.ActionModify:
		if dryRun {
			logger.Info().Str("label", change.Delta.Actual.Name).Msg("Would modify the label, but dry-run mode is enabled")
			return nil
		}
		return applier.Writer.UpdateLabel(ctx, diff.Namespace, diff.Repository, change.Delta.Actual.Name, Update(change.Delta))
	}

	return fmt.Errorf("unknown action %s", change.Action)
}

// Update converts a delta into the fields to send to the host. Only
// differing fields are set.
func Update(delta labels.LabelDelta) vcs.LabelUpdate {
	update := vcs.LabelUpdate{}

	if delta.Delta.Has(labels.DeltaName) {
		name := delta.Spec.Name
		update.NewName = &name
	}

	if delta.Delta.Has(labels.DeltaDescription) {
		// A null description is sent as an empty one to clear it.
		description := delta.Spec.Description.String()
		update.Description = &description
	}

	if delta.Delta.Has(labels.DeltaColor) {
		update.Color = delta.Spec.Color.Ptr()
	}

	return update
}

// ApplyAll applies every diff in order and joins the errors. An aborted
// confirmation stops the loop.
func (applier *Applier) ApplyAll(ctx context.Context, diffs []labels.LabelDiff) error {
	var errs []error

	for _, diff := range diffs {
		err := applier.Apply(ctx, diff)
		if errors.Is(err, ErrAborted) {
			return err
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
