package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSpinnerSilentWhenNotInteractive(t *testing.T) {
	var buf bytes.Buffer
	prev := uiOut
	uiOut = &buf
	t.Cleanup(func() { uiOut = prev })

	s := newSpinner("Resolving 3 modules...")
	s.Start()
	s.SetMessage("Resolving core (1/3)...")
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("spinner wrote %q to a non-terminal", buf.String())
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	quiet(t)
	s := newSpinner("Resolving...")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerCancelled(t *testing.T) {
	quiet(t)
	tests := []struct {
		name   string
		ctx    func() (context.Context, context.CancelFunc)
		cancel bool
	}{
		{"cancel", func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) }, true},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := newSpinnerWithContext(ctx, "Resolving...")
			s.Start()
			if tt.cancel {
				cancel()
			}
			time.Sleep(50 * time.Millisecond)
			if !s.Cancelled() {
				t.Error("spinner should report cancellation")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStopWithMessage(t *testing.T) {
	var buf bytes.Buffer
	prev := uiOut
	uiOut = &buf
	t.Cleanup(func() { uiOut = prev })

	s := newSpinner("Resolving...")
	s.Start()
	s.StopWithSuccess("Resolved")
	if !bytes.Contains(buf.Bytes(), []byte("Resolved")) {
		t.Errorf("success message missing: %q", buf.String())
	}

	buf.Reset()
	s = newSpinner("Resolving...")
	s.Start()
	s.StopWithError("mvn failed")
	if !bytes.Contains(buf.Bytes(), []byte("mvn failed")) {
		t.Errorf("error message missing: %q", buf.String())
	}
}
