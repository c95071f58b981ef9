package lifecycle

import (
	"errors"
	"fmt"
	"testing"
)

func TestGuardRunsInForeground(t *testing.T) {
	state := NewState()

	ran := false
	err := state.Guard(func() error {
		ran = true
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Error("guarded operation did not run")
	}
}

func TestGuardRefusesInBackground(t *testing.T) {
	state := NewState()
	state.SetBackground()

	ran := false
	err := state.Guard(func() error {
		ran = true
		return nil
	})

	if !errors.Is(err, ErrBackgrounded) {
		t.Errorf("error = %v, expected ErrBackgrounded", err)
	}
	if ran {
		t.Error("guarded operation ran while backgrounded")
	}

	state.SetForeground()
	if err := state.Guard(func() error { return nil }); err != nil {
		t.Errorf("guard after foregrounding failed: %v", err)
	}
}

func TestGuardAnnotatesInterruptedNetworkErrors(t *testing.T) {
	state := NewState()
	cause := fmt.Errorf("transport: query timed out")

	err := state.Guard(func() error {
		// The app goes to the background while the attempt is in
		// flight, then the socket fails.
		state.SetBackground()
		return cause
	})

	if !errors.Is(err, ErrInterrupted) {
		t.Errorf("error = %v, expected ErrInterrupted wrap", err)
	}
}

func TestGuardLeavesOtherErrorsAlone(t *testing.T) {
	state := NewState()
	cause := errors.New("bad input")

	err := state.Guard(func() error {
		state.SetBackground()
		return cause
	})
	state.SetForeground()

	if errors.Is(err, ErrInterrupted) {
		t.Error("non-network error was unexpectedly annotated")
	}
	if !errors.Is(err, cause) {
		t.Errorf("error = %v, expected the original cause", err)
	}
}

func TestGuardForegroundNetworkErrorNotAnnotated(t *testing.T) {
	state := NewState()
	cause := errors.New("network unreachable")

	err := state.Guard(func() error { return cause })

	if errors.Is(err, ErrInterrupted) {
		t.Error("error annotated although the app stayed in the foreground")
	}
}
