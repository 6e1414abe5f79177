package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/audittrack/audittrack/audit"
	"github.com/audittrack/audittrack/config"
)

var (
	cfgFile     string
	cfg         *config.Config
	logger      zerolog.Logger
	auditClient *audit.Client

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "audittrack",
	Short: "A dashboard client for the document audit service",
	Long: `audittrack is a CLI client for the external document audit service.
It uploads financial documents for scoring against regulatory rule sets,
shows dashboard statistics and compliance analysis, and works the review
queue of flagged items.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion records build metadata injected by the linker
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, bt)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp initializes the configuration and the audit client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create audit service client
	auditClient, err = audit.NewClient(
		cfg.Audit.URL,
		cfg.Audit.APIKey,
		logger,
		audit.WithTimeout(time.Duration(cfg.Audit.TimeoutSeconds)*time.Second),
		audit.WithAllowedExtensions(cfg.Upload.AllowedExtensions),
		audit.WithMaxFileSize(int64(cfg.Upload.MaxFileSizeMB)*1024*1024),
	)
	if err != nil {
		return fmt.Errorf("failed to create audit client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; suppress color when not writing to a terminal
	noColor := !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
