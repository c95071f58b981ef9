package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync/atomic"
)

var (
	// ErrBackgrounded is returned when an operation is refused because
	// the host application is not in the foreground.
	ErrBackgrounded = errors.New("lifecycle: application is in the background")

	// ErrInterrupted marks a network failure that happened while the
	// application moved to the background mid-operation. The original
	// failure is preserved in the wrap chain; this only makes the cause
	// visible, it does not mask it.
	ErrInterrupted = errors.New("lifecycle: operation interrupted by backgrounding")
)

// State is the process-wide foreground/background flag. The host
// application flips it from its lifecycle notifications; every transport
// attempt reads it before and after execution.
type State struct {
	background atomic.Bool
}

func NewState() *State {
	return &State{}
}

// SetBackground records that the application left the foreground.
func (s *State) SetBackground() {
	s.background.Store(true)
}

// SetForeground records that the application returned to the foreground.
func (s *State) SetForeground() {
	s.background.Store(false)
}

func (s *State) InBackground() bool {
	return s.background.Load()
}

// Guard runs op unless the application is backgrounded, in which case it
// fails immediately without touching the network. If op fails with a
// network-flavored error while the flag was set during execution, the
// error is annotated so the logs show the real cause.
func (s *State) Guard(op func() error) error {
	if s.InBackground() {
		return ErrBackgrounded
	}

	err := op()

	if err != nil && s.InBackground() && isNetworkFlavored(err) {
		return fmt.Errorf("%w: %w", ErrInterrupted, err)
	}

	return err
}

// isNetworkFlavored reports whether err looks like a connection, network,
// or timeout failure — the kinds of errors a mid-flight suspension causes.
func isNetworkFlavored(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, hint := range []string{"connection", "network", "timeout", "timed out", "socket"} {
		if strings.Contains(msg, hint) {
			return true
		}
	}

	return false
}
