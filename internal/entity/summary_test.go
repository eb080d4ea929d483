package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunSummaryAdd(t *testing.T) {
	s := NewRunSummary("run-1")

	s.Add(&Outcome{Addon: &AddonRecord{ID: "1"}, Status: StatusSucceeded, Title: "One"})
	s.Add(&Outcome{Addon: &AddonRecord{ID: "2"}, Status: StatusSkipped, Reason: "already translated"})
	s.Add(&Outcome{Addon: &AddonRecord{ID: "3"}, Status: StatusFailed, Reason: "decompile failed"})
	s.Add(&Outcome{Addon: &AddonRecord{ID: "4"}, Status: StatusSucceeded, Title: "Four", Warning: "shortcut unsupported"})

	require.Equal(t, 4, s.Total)
	require.Equal(t, 2, s.Succeeded)
	require.Equal(t, 1, s.Skipped)
	require.Equal(t, 1, s.Failed)
	require.Equal(t, s.Total, s.Succeeded+s.Skipped+s.Failed)

	require.Equal(t, map[string]string{"2": "already translated"}, s.Skips)
	require.Equal(t, map[string]string{"3": "decompile failed"}, s.Failures)
	require.Equal(t, map[string]string{"4": "shortcut unsupported"}, s.Warnings)
	require.Len(t, s.Outcomes, 4)
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "succeeded", StatusSucceeded.String())
	require.Equal(t, "skipped", StatusSkipped.String())
	require.Equal(t, "failed", StatusFailed.String())
}
