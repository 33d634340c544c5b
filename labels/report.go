package labels

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// WriteReport encodes diffs as a report file. A single diff is written as
// an object, several as an array; ReadReport accepts both.
func WriteReport(w io.Writer, diffs []LabelDiff) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if len(diffs) == 1 {
		return encoder.Encode(diffs[0])
	}

	if diffs == nil {
		diffs = []LabelDiff{}
	}
	return encoder.Encode(diffs)
}

// ReadReport decodes a report file written by WriteReport. Nested labels
// are restored by value, resolved aliases included.
func ReadReport(r io.Reader) ([]LabelDiff, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty report")
	}

	var diffs []LabelDiff
	if trimmed[0] == '{' {
		var diff LabelDiff
		if err := json.Unmarshal(trimmed, &diff); err != nil {
			return nil, fmt.Errorf("decoding report: %w", err)
		}
		diffs = []LabelDiff{diff}
	} else if err := json.Unmarshal(trimmed, &diffs); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}

	for i := range diffs {
		diffs[i].normalize()
	}

	return diffs, nil
}

// normalize replaces lists missing from a decoded report with empty ones.
func (diff *LabelDiff) normalize() {
	if diff.Valid == nil {
		diff.Valid = []ResolvedLabel{}
	}
	if diff.Missing == nil {
		diff.Missing = []LabelSpec{}
	}
	if diff.Extra == nil {
		diff.Extra = []Label{}
	}
	if diff.Diff == nil {
		diff.Diff = []LabelDelta{}
	}
}
