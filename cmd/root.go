package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/m3client/annosaurus"
	"github.com/s0up4200/m3client/config"
	"github.com/s0up4200/m3client/m3"
	"github.com/s0up4200/m3client/panoptes"
	"github.com/s0up4200/m3client/vampiresquid"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	annoClient     *annosaurus.Client
	panoptesClient *panoptes.Client
	catalogClient  *vampiresquid.Client
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "m3",
	Short: "Query the M3 media microservices",
	Long: `m3 is a CLI for the M3 media microservices: the annosaurus annotation
service, the panoptes image service and the vampiresquid media catalog.
It is a thin operational surface over the client library in this module.`,
	PersistentPreRunE: initializeApp,
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

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if cfg.Annosaurus.Enabled() {
		annoClient = annosaurus.NewClient(cfg.Annosaurus.URL, logger,
			m3.WithTimeout(time.Duration(cfg.Annosaurus.TimeoutSecs)*time.Second))
	}
	if cfg.Panoptes.Enabled() {
		panoptesClient = panoptes.NewClient(cfg.Panoptes.URL, logger,
			m3.WithTimeout(time.Duration(cfg.Panoptes.TimeoutSecs)*time.Second))
	}
	if cfg.VampireSquid.Enabled() {
		catalogClient = vampiresquid.NewClient(cfg.VampireSquid.URL, logger,
			m3.WithTimeout(time.Duration(cfg.VampireSquid.TimeoutSecs)*time.Second))
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
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

	noColor := !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
