// cmd/api/config.go
// This file defines the command-line interface and loads serverConfig from
// flags, API_* environment variables and an optional config.yaml, in that
// order of precedence.
package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "API"

// Config keys. Each key is bound to the flag of the same name with dots
// and underscores replaced by dashes.
const (
	cfgKeyPort             = "port"
	cfgKeyEnv              = "env"
	cfgKeyLogLevel         = "log_level"
	cfgKeyLogFormat        = "log_format"
	cfgKeyLogSource        = "log_source"
	cfgKeyBaseURL          = "base_url"
	cfgKeyDemoPersonFields = "demo_person_fields"
	cfgKeyDBDriver         = "db.driver"
	cfgKeyDBDSN            = "db.dsn"
	cfgKeyDBMaxOpenConns   = "db.max_open_conns"
	cfgKeyDBMaxIdleConns   = "db.max_idle_conns"
	cfgKeyDBMaxIdleTime    = "db.max_idle_time"
	cfgKeyDBAutoMigrate    = "db.auto_migrate"
	cfgKeyLimiterEnabled   = "limiter.enabled"
	cfgKeyLimiterRPS       = "limiter.rps"
	cfgKeyLimiterBurst     = "limiter.burst"
	cfgKeyCORSOrigins      = "cors.trusted_origins"
)

// serverConfig holds all the values that can be tweaked at startup.
type serverConfig struct {
	port             int    // TCP port the HTTP server listens on (default 8080)
	environment      string // Runtime environment: development, staging, or production
	logLevel         string // debug, info, warn or error
	logFormat        string // json or text; empty picks by environment
	logSource        bool   // Add the source file and line to log records
	baseURL          string // Public origin used in hypermedia links
	demoPersonFields bool   // Stamp display-only fields on GET /api/person/v1/:id
	db               struct {
		driver       string        // postgres or sqlite
		dsn          string        // Data Source Name (connection string or file path)
		maxOpenConns int           // Upper bound on open connections
		maxIdleConns int           // Upper bound on idle connections
		maxIdleTime  time.Duration // Idle connections older than this are closed
		autoMigrate  bool          // Apply the schema before serving
	}
	limiter struct {
		enabled bool    // Per-IP rate limiting on/off
		rps     float64 // Tokens added per second
		burst   int     // Bucket size
	}
	cors struct {
		trustedOrigins []string // Origins allowed to make cross-site requests
	}
}

// newRootCmd builds the "api" command tree. Running the root command
// without a subcommand starts the server.
func newRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	root := &cobra.Command{
		Use:           "api",
		Short:         "REST API for the person and book resources",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initViper(v, cmd.Flags(), configFile)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(loadConfig(v))
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default: ./config.yaml when present)")
	flags.Int("port", 8080, "Server port")
	flags.String("env", "development", "Environment (development|staging|production)")
	flags.String("log-level", "info", "Log level (debug|info|warn|error)")
	flags.String("log-format", "", "Log format (json|text), default json in production and text elsewhere")
	flags.Bool("log-source", false, "Include source file and line in log records")
	flags.String("base-url", "http://localhost:8080", "Public base URL used in hypermedia links")
	flags.Bool("demo-person-fields", false, "Stamp display-only fields on single-person responses")
	flags.String("db-driver", "sqlite", "Database driver (postgres|sqlite)")
	flags.String("db-dsn", "people-books.db", "Database DSN or SQLite file path")
	flags.Int("db-max-open-conns", 25, "Database max open connections")
	flags.Int("db-max-idle-conns", 25, "Database max idle connections")
	flags.Duration("db-max-idle-time", 15*time.Minute, "Database max connection idle time")
	flags.Bool("db-auto-migrate", true, "Apply the schema on startup")
	flags.Bool("limiter-enabled", true, "Enable per-IP rate limiting")
	flags.Float64("limiter-rps", 2, "Rate limiter requests per second")
	flags.Int("limiter-burst", 4, "Rate limiter burst")
	flags.StringSlice("cors-trusted-origins", nil, "Trusted CORS origins")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE: func(_ *cobra.Command, _ []string) error {
				return runServe(loadConfig(v))
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply the database schema and exit",
			RunE: func(_ *cobra.Command, _ []string) error {
				return runMigrate(loadConfig(v))
			},
		},
	)

	return root
}

// initViper binds every flag to its config key, enables API_* environment
// variables and reads the config file if one exists.
func initViper(v *viper.Viper, flags *pflag.FlagSet, configFile string) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		switch f.Name {
		case "config", "help", "version":
			return
		}
		if err := v.BindPFlag(flagKey(f.Name), f); err != nil {
			bindErr = errors.Join(bindErr, err)
		}
	})
	if bindErr != nil {
		return bindErr
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			// A missing config.yaml is not an error.
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// flagKey maps a flag name to its config key: "db-max-open-conns" becomes
// "db.max_open_conns".
func flagKey(name string) string {
	for _, section := range []string{"db", "limiter", "cors"} {
		if rest, ok := strings.CutPrefix(name, section+"-"); ok {
			return section + "." + strings.ReplaceAll(rest, "-", "_")
		}
	}
	return strings.ReplaceAll(name, "-", "_")
}

// loadConfig copies the resolved values out of v.
func loadConfig(v *viper.Viper) serverConfig {
	var cfg serverConfig

	cfg.port = v.GetInt(cfgKeyPort)
	cfg.environment = v.GetString(cfgKeyEnv)
	cfg.logLevel = v.GetString(cfgKeyLogLevel)
	cfg.logFormat = v.GetString(cfgKeyLogFormat)
	cfg.logSource = v.GetBool(cfgKeyLogSource)
	cfg.baseURL = v.GetString(cfgKeyBaseURL)
	cfg.demoPersonFields = v.GetBool(cfgKeyDemoPersonFields)

	cfg.db.driver = v.GetString(cfgKeyDBDriver)
	cfg.db.dsn = v.GetString(cfgKeyDBDSN)
	cfg.db.maxOpenConns = v.GetInt(cfgKeyDBMaxOpenConns)
	cfg.db.maxIdleConns = v.GetInt(cfgKeyDBMaxIdleConns)
	cfg.db.maxIdleTime = v.GetDuration(cfgKeyDBMaxIdleTime)
	cfg.db.autoMigrate = v.GetBool(cfgKeyDBAutoMigrate)

	cfg.limiter.enabled = v.GetBool(cfgKeyLimiterEnabled)
	cfg.limiter.rps = v.GetFloat64(cfgKeyLimiterRPS)
	cfg.limiter.burst = v.GetInt(cfgKeyLimiterBurst)

	cfg.cors.trustedOrigins = v.GetStringSlice(cfgKeyCORSOrigins)

	return cfg
}
