package executor

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell")
	}

	e := New()

	out, err := e.Execute(context.Background(), "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("stdout = %q, want hello", out)
	}

	_, err = e.Execute(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error should carry stderr, got %v", err)
	}
}

func TestExecute_Cancelled(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New().Execute(ctx, "sh", "-c", "sleep 5"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestLastLines(t *testing.T) {
	in := "a\nb\nc\nd"
	if got := lastLines(in, 2); got != "c\nd" {
		t.Errorf("lastLines() = %q", got)
	}
	if got := lastLines(in, 10); got != in {
		t.Errorf("lastLines() = %q", got)
	}
}
