package inventory

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/obentoo/fedora-feedback/internal/common/command"
)

// QueryRelease returns the Bodhi release identifier of the running system,
// e.g. "F40", by asking rpm for the %{fedora} macro.
func QueryRelease(ctx context.Context, runner command.Runner) (string, error) {
	out, err := runner.Run(ctx, "rpm", "--eval", "%{fedora}")
	if err != nil {
		return "", err
	}

	num := strings.TrimSpace(out)
	if _, err := strconv.Atoi(num); err != nil {
		// rpm echoes the macro back when it is undefined
		return "", fmt.Errorf("%w: rpm did not report a Fedora release: %q", command.ErrInvalidOutput, num)
	}
	return "F" + num, nil
}

// ListInstalled returns the file names of the source packages of everything
// installed, one per line, as reported by dnf from its local cache.
func ListInstalled(ctx context.Context, runner command.Runner) (string, error) {
	return runner.Run(ctx, "dnf", "--quiet", "repoquery", "--cacheonly", "--installed", "--source")
}
