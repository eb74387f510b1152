package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	s := newSpinner("Scanning...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Scanning with context...")
	s.Start()
	cancel()

	// Give the goroutine time to notice cancellation
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Stopping twice...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	s := newSpinner("Finishing...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Done")
}

func TestSpinnerStopWithError(t *testing.T) {
	s := newSpinner("Failing...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Failed")
}
