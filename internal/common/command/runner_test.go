package command

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func requireBinary(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

func TestExecRunnerReturnsStdout(t *testing.T) {
	requireBinary(t, "sh")

	out, err := NewExecRunner().Run(context.Background(), "sh", "-c", "printf 'a\\nb\\n'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "a\nb\n" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	requireBinary(t, "sh")

	_, err := NewExecRunner().Run(context.Background(), "sh", "-c", "echo broken repo >&2; exit 3")
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("expected ErrCommandFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "broken repo") {
		t.Errorf("error should include stderr, got %v", err)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	_, err := NewExecRunner().Run(context.Background(), "definitely-not-a-real-binary-4242")
	if !errors.Is(err, ErrCommandFailed) {
		t.Errorf("expected ErrCommandFailed, got %v", err)
	}
}

func TestExecRunnerInvalidUTF8(t *testing.T) {
	requireBinary(t, "sh")

	_, err := NewExecRunner().Run(context.Background(), "sh", "-c", "printf '\\377\\376'")
	if !errors.Is(err, ErrInvalidOutput) {
		t.Errorf("expected ErrInvalidOutput, got %v", err)
	}
}

func TestMockRunnerRecordsCalls(t *testing.T) {
	m := NewMockRunner(map[string]string{
		"rpm --eval %{fedora}": "40\n",
	})

	out, err := m.Run(context.Background(), "rpm", "--eval", "%{fedora}")
	if err != nil {
		t.Fatal(err)
	}
	if out != "40\n" {
		t.Errorf("unexpected output: %q", out)
	}
	if len(m.Calls) != 1 || m.Calls[0].String() != "rpm --eval %{fedora}" {
		t.Errorf("unexpected calls: %v", m.Calls)
	}
}
