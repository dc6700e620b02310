package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/obentoo/fedora-feedback/internal/common/command"
)

func TestQueryRelease(t *testing.T) {
	runner := command.NewMockRunner(map[string]string{
		"rpm --eval %{fedora}": "40\n",
	})

	release, err := QueryRelease(context.Background(), runner)
	if err != nil {
		t.Fatalf("QueryRelease failed: %v", err)
	}
	if release != "F40" {
		t.Errorf("release = %q, want F40", release)
	}
}

func TestQueryReleaseNotFedora(t *testing.T) {
	runner := command.NewMockRunner(map[string]string{
		"rpm --eval %{fedora}": "%{fedora}\n",
	})

	_, err := QueryRelease(context.Background(), runner)
	if !errors.Is(err, command.ErrInvalidOutput) {
		t.Errorf("expected ErrInvalidOutput, got %v", err)
	}
}

func TestQueryReleaseCommandFails(t *testing.T) {
	runner := &command.MockRunner{
		RunFunc: func(name string, args ...string) (string, error) {
			return "", command.ErrCommandFailed
		},
	}

	_, err := QueryRelease(context.Background(), runner)
	if !errors.Is(err, command.ErrCommandFailed) {
		t.Errorf("expected ErrCommandFailed, got %v", err)
	}
}

func TestListInstalledInvokesDnf(t *testing.T) {
	runner := command.NewMockRunner(map[string]string{
		"dnf --quiet repoquery --cacheonly --installed --source": "bash-5.2.26-3.fc40.src.rpm\n",
	})

	out, err := ListInstalled(context.Background(), runner)
	if err != nil {
		t.Fatal(err)
	}
	if out != "bash-5.2.26-3.fc40.src.rpm\n" {
		t.Errorf("unexpected output %q", out)
	}
	if len(runner.Calls) != 1 || runner.Calls[0].Name != "dnf" {
		t.Errorf("unexpected calls %v", runner.Calls)
	}
}
