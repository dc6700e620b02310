package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/obentoo/fedora-feedback/internal/common/logger"
	"github.com/obentoo/fedora-feedback/internal/common/output"
)

// defaultLogFile is the value of a bare --log-file
const defaultLogFile = "default"

var (
	verbose bool
	quiet   bool
	noColor bool
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "fedora-feedback",
	Short: "Remind you to give feedback on Fedora updates in testing",
	Long: `Check which installed packages come from updates in testing on Bodhi and
raise a desktop notification linking to them, so you can leave feedback.

Updates you submitted or already commented on are skipped. Packages listed as
interests are reported when a newer build is waiting in testing.

Examples:
  fedora-feedback                          Check and notify
  fedora-feedback --print-only             Print the report only
  fedora-feedback -u decathorpe -i rust-serde
  fedora-feedback --release F41 --format yaml`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logger.SetVerbose(true)
		}
		if quiet {
			logger.SetQuiet(true)
		}
		if noColor || !output.IsTerminal() {
			output.NoColor()
		}
		switch logFile {
		case "":
		case defaultLogFile:
			return logger.Default().EnableFileLogging()
		default:
			return logger.Default().EnableFileLoggingTo(logFile)
		}
		return nil
	},
	RunE: runFeedback,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also log to `path` (default location when given without a value)")
	rootCmd.PersistentFlags().Lookup("log-file").NoOptDefVal = defaultLogFile
}

func main() {
	// A .env file in the working directory may set BODHI_URL
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Warning: ignoring .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Default().Close()

	if err != nil {
		logger.Error("Error: %v", err)
		os.Exit(1)
	}
}
