package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

// instantTimer fires immediately and records every requested wait
type instantTimer struct {
	c     chan time.Time
	waits *[]time.Duration
}

func (t *instantTimer) Start(d time.Duration) {
	*t.waits = append(*t.waits, d)
	t.c <- time.Now()
}

func (t *instantTimer) Stop() {}

func (t *instantTimer) C() <-chan time.Time { return t.c }

func testPolicy(waits *[]time.Duration) Policy {
	p := DefaultPolicy()
	p.NewTimer = func() backoff.Timer {
		return &instantTimer{c: make(chan time.Time, 1), waits: waits}
	}
	return p
}

type statusErr int

func (s statusErr) Error() string   { return fmt.Sprintf("status %d", int(s)) }
func (s statusErr) HTTPStatus() int { return int(s) }

func TestPolicy_RetriesTransientUntilExhausted(t *testing.T) {
	var waits []time.Duration
	p := testPolicy(&waits)

	resetErr := &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}
	calls := 0
	attempts, err := p.Do(context.Background(), func(_ context.Context, attempt int) error {
		calls++
		if attempt != calls {
			t.Errorf("attempt = %d, want %d", attempt, calls)
		}
		return resetErr
	}, nil)

	if calls != 3 || attempts != 3 {
		t.Fatalf("calls = %d attempts = %d, want 3", calls, attempts)
	}
	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ExhaustedError, got %T %v", err, err)
	}
	if exhausted.Attempts != 3 || !errors.Is(err, syscall.ECONNRESET) {
		t.Errorf("unexpected exhausted error %+v", exhausted)
	}

	want := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(waits) != len(want) {
		t.Fatalf("waits = %v, want %v", waits, want)
	}
	for i := range want {
		if waits[i] != want[i] {
			t.Errorf("wait[%d] = %v, want %v", i, waits[i], want[i])
		}
	}
}

func TestPolicy_FailsFastOnClientErrors(t *testing.T) {
	for _, status := range []int{400, 401, 403, 404, 429} {
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			var waits []time.Duration
			p := testPolicy(&waits)

			calls := 0
			attempts, err := p.Do(context.Background(), func(context.Context, int) error {
				calls++
				return statusErr(status)
			}, nil)

			if calls != 1 || attempts != 1 {
				t.Errorf("calls = %d, want 1", calls)
			}
			var exhausted *ExhaustedError
			if errors.As(err, &exhausted) {
				t.Error("client errors must not be reported as exhausted")
			}
			if len(waits) != 0 {
				t.Errorf("unexpected waits %v", waits)
			}
		})
	}
}

func TestPolicy_SucceedsAfterRetry(t *testing.T) {
	var waits []time.Duration
	p := testPolicy(&waits)

	var notified []int
	attempts, err := p.Do(context.Background(), func(_ context.Context, attempt int) error {
		if attempt < 2 {
			return statusErr(503)
		}
		return nil
	}, func(attempt int, _ error, _ time.Duration) {
		notified = append(notified, attempt)
	})

	if err != nil || attempts != 2 {
		t.Fatalf("attempts = %d err = %v", attempts, err)
	}
	if len(notified) != 1 || notified[0] != 1 {
		t.Errorf("notified = %v", notified)
	}
}

func TestPolicy_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var waits []time.Duration
	p := testPolicy(&waits)
	p.Retryable = func(error) bool { return true }

	_, err := p.Do(ctx, func(context.Context, int) error {
		return errors.New("i/o timeout")
	}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"econnreset", &net.OpError{Op: "read", Err: syscall.ECONNRESET}, true},
		{"wrapped reset", fmt.Errorf("upload: %w", syscall.ECONNRESET), true},
		{"deadline", context.DeadlineExceeded, true},
		{"cancelled", context.Canceled, false},
		{"server error", statusErr(502), true},
		{"unauthorized", statusErr(401), false},
		{"bad request", statusErr(400), false},
		{"string timeout", errors.New("dial tcp: i/o timeout"), true},
		{"plain", errors.New("invalid model"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
