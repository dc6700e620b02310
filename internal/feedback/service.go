// Package feedback runs one check: it reads the local inventory, fetches the
// updates in testing from Bodhi, classifies them, prints a report and raises
// desktop notifications.
package feedback

import (
	"context"
	"fmt"
	"io"

	"github.com/obentoo/fedora-feedback/internal/classify"
	"github.com/obentoo/fedora-feedback/internal/common/bodhi"
	"github.com/obentoo/fedora-feedback/internal/common/command"
	"github.com/obentoo/fedora-feedback/internal/common/config"
	"github.com/obentoo/fedora-feedback/internal/common/logger"
	"github.com/obentoo/fedora-feedback/internal/inventory"
	"github.com/obentoo/fedora-feedback/internal/notify"
)

// UpdateSource returns the updates matching a query
type UpdateSource interface {
	QueryUpdates(ctx context.Context, q bodhi.Query) ([]bodhi.Update, error)
}

// NotifierFactory opens the notification sink. It is only called when there
// is something to send.
type NotifierFactory func() (notify.Notifier, error)

// RunOptions select what a run does besides classifying
type RunOptions struct {
	// Release overrides the release reported by rpm, e.g. "F40"
	Release string
	// PrintOnly prints the report and sends no notification
	PrintOnly bool
	// Format is FormatText or FormatYAML
	Format string
}

// Service wires the collaborators of a run
type Service struct {
	cfg         *config.Config
	runner      command.Runner
	source      UpdateSource
	newNotifier NotifierFactory
	out         io.Writer
	configure   func(*notify.Dispatcher)
}

// NewService creates a service. cfg must be the merged run configuration.
func NewService(cfg *config.Config, runner command.Runner, source UpdateSource, newNotifier NotifierFactory, out io.Writer) *Service {
	return &Service{
		cfg:         cfg,
		runner:      runner,
		source:      source,
		newNotifier: newNotifier,
		out:         out,
	}
}

// SetDispatcherHook lets tests adjust the dispatcher before sending
func (s *Service) SetDispatcherHook(fn func(*notify.Dispatcher)) {
	s.configure = fn
}

// Run performs one check and returns the printed report
func (s *Service) Run(ctx context.Context, opts RunOptions) (*Report, error) {
	release := opts.Release
	if release == "" {
		r, err := inventory.QueryRelease(ctx, s.runner)
		if err != nil {
			return nil, fmt.Errorf("failed to determine release: %w", err)
		}
		release = r
	}
	logger.Debug("release: %s", release)

	raw, err := inventory.ListInstalled(ctx, s.runner)
	if err != nil {
		return nil, fmt.Errorf("failed to list installed packages: %w", err)
	}
	inv, err := inventory.Build(raw, inventory.Options{StrictParsing: s.cfg.StrictParsing})
	if err != nil {
		return nil, err
	}
	logger.Debug("%d installed source packages", inv.Len())

	logger.Info("Querying %s updates in testing for %s...", s.cfg.Bodhi.URL, release)
	updates, err := s.source.QueryUpdates(ctx, bodhi.TestingQuery(release))
	if err != nil {
		return nil, err
	}
	logger.Debug("%d updates in testing", len(updates))

	result, err := classify.Classify(inv, updates, classify.Options{
		Username:      s.cfg.Username,
		Interests:     s.cfg.Interests,
		StrictParsing: s.cfg.StrictParsing,
	})
	if err != nil {
		return nil, err
	}

	report := NewReport(release, s.cfg.Interests, inv, result)
	if err := report.Render(s.out, opts.Format); err != nil {
		return nil, err
	}

	if opts.PrintOnly || !s.cfg.Notifications.Enabled {
		logger.Debug("notifications disabled")
		return report, nil
	}
	if err := s.notify(release, result); err != nil {
		return report, err
	}
	return report, nil
}

// notify sends the feedback notification, then the interesting one.
// Empty results send nothing.
func (s *Service) notify(release string, result *classify.Result) error {
	var payloads []notify.Payload
	if len(result.FeedbackPending) > 0 {
		payloads = append(payloads, notify.FeedbackPayload(release, result.FeedbackPending))
	}
	if len(result.InterestingPending) > 0 {
		payloads = append(payloads, notify.InterestingPayload(release, s.cfg.Interests, result.InterestingPending))
	}
	if len(payloads) == 0 {
		return nil
	}

	strict := s.cfg.Notifications.Strict
	n, err := s.newNotifier()
	if err != nil {
		if strict {
			return err
		}
		logger.Warn("Warning: %v", err)
		return nil
	}

	d := notify.NewDispatcher(n, strict)
	d.SetThrottle(s.cfg.Notifications.Throttle.Duration)
	if s.configure != nil {
		s.configure(d)
	}
	for _, p := range payloads {
		if err := d.Send(p); err != nil {
			return err
		}
	}
	return nil
}
