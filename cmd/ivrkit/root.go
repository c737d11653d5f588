package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/config"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/dialog"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/harness"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/jwt"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/logger"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/units"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/xmlmap"
)

const serviceName = "ivrkit"

// app is the state shared by every subcommand, built in PersistentPreRunE.
type app struct {
	cfg       Config
	logLevel  string
	logFormat string
	envFiles  []string
	now       string

	log     *slog.Logger
	clock   func() time.Time
	catalog *units.Catalog
	harness *harness.Harness
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   serviceName,
		Short: "Run and test IVR units",
		Long: `ivrkit runs the IVR unit library: validation units, user functions and
output parsers, plus Go or CEL units loaded from source.

Configuration comes from the environment (and .env): APP_ENV, LOG_LEVEL,
LOG_FORMAT, IVRKIT_JWT_SECRET, IVRKIT_CACHE_SIZE, IVRKIT_ALLOW_EVAL,
IVRKIT_TIMEZONE_OFFSET and HTTP_*.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json (overrides LOG_FORMAT)")
	flags.StringSliceVar(&a.envFiles, "env-file", nil, "additional .env files, later files win")
	flags.StringVar(&a.now, "now", "", "fixed clock for units, e.g. 2025-06-15T10:30:00Z")

	root.AddCommand(
		a.listCmd(),
		a.runCmd(),
		a.execCmd(),
		a.testCmd(),
		a.serveCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(a.envFiles...); err != nil {
		return err
	}
	if err := config.Load(&a.cfg); err != nil {
		return err
	}

	log, err := a.logger(cmd)
	if err != nil {
		return err
	}
	a.log = log

	clock := time.Now
	if a.now != "" {
		fixed, err := time.Parse(time.RFC3339, a.now)
		if err != nil {
			return fmt.Errorf("--now: %w", err)
		}
		clock = func() time.Time { return fixed }
	}
	a.clock = clock

	a.catalog = units.New(
		units.WithGreetingOffset(a.cfg.greetingOffset()),
		units.WithTokenSecret(a.cfg.JWTSecret),
	)
	a.harness, err = harness.New(
		harness.WithLogger(log),
		harness.WithClock(clock),
		harness.WithSigner(jwt.NewSigner(jwt.WithClock(clock)).Sign),
		harness.WithXMLParser(xmlmap.Parse),
		harness.WithCacheSize(a.cfg.cacheSize()),
	)
	return err
}

func (a *app) logger(cmd *cobra.Command) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(a.cfg.Env, serviceName),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithContextExtractors(dialog.LoggerExtractor()),
	}

	level := firstNonEmpty(a.logLevel, a.cfg.LogLevel)
	if level != "" {
		l, err := logger.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithLevel(l))
	}
	format := firstNonEmpty(a.logFormat, a.cfg.LogFormat)
	if format != "" {
		f, err := logger.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithFormat(f))
	}
	return logger.New(opts...), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
