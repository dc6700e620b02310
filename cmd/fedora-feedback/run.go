package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/obentoo/fedora-feedback/internal/common/bodhi"
	"github.com/obentoo/fedora-feedback/internal/common/command"
	"github.com/obentoo/fedora-feedback/internal/common/config"
	"github.com/obentoo/fedora-feedback/internal/common/logger"
	"github.com/obentoo/fedora-feedback/internal/feedback"
	"github.com/obentoo/fedora-feedback/internal/notify"
)

var (
	// username overrides the configured FAS account
	username string
	// interests are appended to the configured interests
	interests []string
	// configPath replaces the config file lookup
	configPath string
	// release skips asking rpm for the running release
	release string
	// printOnly disables notifications
	printOnly bool
	// strictNotify makes notification failures fatal, or not
	strictNotify bool
	// lenientParse skips malformed package identifiers
	lenientParse bool
	// format selects text or yaml output
	format string
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&username, "username", "u", "", "FAS username (overrides the config file)")
	flags.StringArrayVarP(&interests, "interest", "i", nil, "Watch a package for new updates (repeatable)")
	flags.StringVar(&configPath, "config", "", "Read configuration from `path`")
	flags.StringVar(&release, "release", "", "Bodhi release to check, e.g. F40 (default: the running release)")
	flags.BoolVar(&printOnly, "print-only", false, "Print the report without sending notifications")
	flags.BoolVar(&strictNotify, "strict-notify", true, "Fail when a notification cannot be shown")
	flags.BoolVar(&lenientParse, "lenient-parse", false, "Skip malformed package identifiers instead of failing")
	flags.StringVar(&format, "format", feedback.FormatText, "Output format: text or yaml")
}

// loadConfig resolves the run configuration from file, environment and flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	overrides := config.Overrides{
		Username:       username,
		Interests:      interests,
		LenientParsing: lenientParse,
	}
	if cmd.Flags().Changed("strict-notify") {
		overrides.StrictNotifications = &strictNotify
	}
	return cfg.ApplyEnv().Merge(overrides)
}

func runFeedback(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger.Debug("user %s, interests %v", cfg.Username, cfg.Interests)

	retry := bodhi.DefaultRetryConfig()
	retry.MaxRetries = cfg.Bodhi.Retries
	retry.Timeout = cfg.Bodhi.Timeout.Duration
	client := bodhi.NewClientWithOptions(cfg.Bodhi.URL, retry)

	openNotifier := func() (notify.Notifier, error) {
		return notify.NewDBusNotifier()
	}

	svc := feedback.NewService(cfg, command.NewExecRunner(), client, openNotifier, os.Stdout)
	_, err = svc.Run(cmd.Context(), feedback.RunOptions{
		Release:   release,
		PrintOnly: printOnly,
		Format:    format,
	})
	return err
}
