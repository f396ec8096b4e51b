package domain

import (
	"errors"
	"testing"
)

func TestValidateTransition_AllowedEdges(t *testing.T) {
	t.Parallel()

	allowed := []struct {
		from TripStatus
		to   TripStatus
	}{
		{TripStatusDraft, TripStatusPlanned},
		{TripStatusDraft, TripStatusCancelled},
		{TripStatusPlanned, TripStatusAssigned},
		{TripStatusPlanned, TripStatusCancelled},
		{TripStatusAssigned, TripStatusInProgress},
		{TripStatusAssigned, TripStatusCancelled},
		{TripStatusInProgress, TripStatusCompleted},
	}

	for _, tc := range allowed {
		if err := ValidateTransition(tc.from, tc.to); err != nil {
			t.Errorf("ValidateTransition(%s, %s) = %v, want nil", tc.from, tc.to, err)
		}
	}
}

func TestValidateTransition_RejectsEverythingElse(t *testing.T) {
	t.Parallel()

	all := []TripStatus{
		TripStatusDraft, TripStatusPlanned, TripStatusAssigned,
		TripStatusInProgress, TripStatusCompleted, TripStatusCancelled,
		TripStatusActive, TripStatusPending, TripStatusClosed, TripStatusFinalized,
	}

	allowed := map[TripStatus]map[TripStatus]bool{
		TripStatusDraft:      {TripStatusPlanned: true, TripStatusCancelled: true},
		TripStatusPlanned:    {TripStatusAssigned: true, TripStatusCancelled: true},
		TripStatusAssigned:   {TripStatusInProgress: true, TripStatusCancelled: true},
		TripStatusInProgress: {TripStatusCompleted: true},
	}

	for _, from := range all {
		for _, to := range all {
			if allowed[from][to] {
				continue
			}
			err := ValidateTransition(from, to)
			if err == nil {
				t.Errorf("ValidateTransition(%s, %s) = nil, want error", from, to)
				continue
			}
			var transitionErr *InvalidTransitionError
			if !errors.As(err, &transitionErr) {
				t.Errorf("ValidateTransition(%s, %s) returned %T, want *InvalidTransitionError", from, to, err)
				continue
			}
			if transitionErr.From != from || transitionErr.To != to {
				t.Errorf("InvalidTransitionError carries %s->%s, want %s->%s",
					transitionErr.From, transitionErr.To, from, to)
			}
		}
	}
}

func TestValidateTransition_TerminalStates(t *testing.T) {
	t.Parallel()

	targets := []TripStatus{
		TripStatusDraft, TripStatusPlanned, TripStatusAssigned,
		TripStatusInProgress, TripStatusCompleted, TripStatusCancelled,
	}

	for _, terminal := range []TripStatus{TripStatusCompleted, TripStatusCancelled} {
		for _, to := range targets {
			if err := ValidateTransition(terminal, to); err == nil {
				t.Errorf("transition out of terminal %s to %s was allowed", terminal, to)
			}
		}
	}
}

func TestValidateTransition_LegacyStatusesRejectAll(t *testing.T) {
	t.Parallel()

	for _, legacy := range []TripStatus{TripStatusActive, TripStatusPending, TripStatusClosed, TripStatusFinalized} {
		if err := ValidateTransition(legacy, TripStatusPlanned); err == nil {
			t.Errorf("transition out of legacy status %s was allowed", legacy)
		}
		if err := ValidateTransition(TripStatusDraft, legacy); err == nil {
			t.Errorf("transition into legacy status %s was allowed", legacy)
		}
	}
}

func TestValidateTransition_FullLifecycleWalk(t *testing.T) {
	t.Parallel()

	status := TripStatusDraft
	for _, next := range []TripStatus{
		TripStatusPlanned, TripStatusAssigned, TripStatusInProgress, TripStatusCompleted,
	} {
		if err := ValidateTransition(status, next); err != nil {
			t.Fatalf("walk blocked at %s -> %s: %v", status, next, err)
		}
		status = next
	}

	// Skipping a step must fail.
	if err := ValidateTransition(TripStatusDraft, TripStatusAssigned); err == nil {
		t.Error("DRAFT -> ASSIGNED skipped PLANNED but was allowed")
	}
	if err := ValidateTransition(TripStatusPlanned, TripStatusCompleted); err == nil {
		t.Error("PLANNED -> COMPLETED skipped two steps but was allowed")
	}
}

func TestInvalidTransitionError_Message(t *testing.T) {
	t.Parallel()

	err := &InvalidTransitionError{From: TripStatusCompleted, To: TripStatusDraft}
	want := "invalid trip transition from COMPLETED to DRAFT"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
