package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/lexreg/internal/config"
	"github.com/zjrosen/lexreg/internal/flags"
	"github.com/zjrosen/lexreg/internal/log"
	appreg "github.com/zjrosen/lexreg/internal/registry/application"
	"github.com/zjrosen/lexreg/internal/tracing"
)

const localConfigPath = ".lexreg/config.yaml"

var (
	version      = "dev"
	cfgFile      string
	debugFlag    bool
	formatFlag   string
	cfg          config.Config
	featureFlags *flags.Registry
	logCleanup   func()
)

var rootCmd = &cobra.Command{
	Use:   "lexreg",
	Short: "Resolve legal concept and article specifications",
	Long: `lexreg resolves numeric legal concept and article codes to their
specification for an effective period and revision version.

Catalogs are loaded from the builtin catalog, a catalog directory, the user
catalog directory (~/.lexreg/catalogs) and an SQLite catalog database.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/lexreg/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (also enabled by LEXREG_DEBUG)")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "o", "",
		"output format: json or table (overrides config)")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("catalog.disable_builtin", defaults.Catalog.DisableBuiltin)
	viper.SetDefault("catalog.user_dir", defaults.Catalog.UserDir)
	viper.SetDefault("catalog.watch_debounce", defaults.Catalog.WatchDebounce)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("cache.cleanup_interval", defaults.Cache.CleanupInterval)
	viper.SetDefault("cache.refresh_on_hit", defaults.Cache.RefreshOnHit)
	viper.SetDefault("output.format", defaults.Output.Format)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .lexreg/config.yaml (current directory)
		// 2. ~/.config/lexreg/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "lexreg"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .lexreg/config.yaml
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(localConfigPath); writeErr == nil {
				viper.SetConfigFile(localConfigPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	cfg = config.Config{}
	_ = viper.Unmarshal(&cfg)
}

// setup starts logging, validates the config and loads feature flags.
func setup(_ *cobra.Command, _ []string) error {
	if os.Getenv("LEXREG_DEBUG") != "" || debugFlag {
		logPath := os.Getenv("LEXREG_LOG")
		if logPath == "" {
			logPath = cfg.Log.File
		}
		cleanup, err := log.Init(logPath)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logCleanup = cleanup
		log.SetMinLevel(log.ParseLevel(cfg.Log.Level))
		log.Info(log.CatConfig, "lexreg starting", "config", viper.ConfigFileUsed(), "logPath", logPath)
	}

	if formatFlag != "" {
		cfg.Output.Format = formatFlag
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	featureFlags = flags.New(cfg.Flags)
	return nil
}

// sourcesFromConfig maps the catalog config to service sources. The user catalog
// directory is only read when the user-catalog flag is on.
func sourcesFromConfig() appreg.Sources {
	sources := appreg.Sources{
		Builtin:    !cfg.Catalog.DisableBuiltin,
		Dir:        cfg.Catalog.Dir,
		SQLitePath: cfg.Catalog.SQLitePath,
	}
	if featureFlags.Enabled(flags.FlagUserCatalog) {
		sources.UserDir = cfg.Catalog.UserDir
	}
	return sources
}

// newSpecService builds the registry service and its tracer from the loaded config.
// The returned cleanup flushes traces and releases subscribers.
func newSpecService(ctx context.Context) (*appreg.SpecService, func(), error) {
	provider, err := tracing.NewProvider(ctx, cfg.Tracing)
	if err != nil {
		return nil, nil, fmt.Errorf("creating tracing provider: %w", err)
	}

	opts := appreg.Options{
		Sources:       sourcesFromConfig(),
		CacheCleanup:  cfg.Cache.CleanupInterval,
		RefreshOnHit:  cfg.Cache.RefreshOnHit,
		WatchDebounce: cfg.Catalog.WatchDebounce,
		Tracer:        provider.Tracer(),
	}
	if featureFlags.Enabled(flags.FlagSpecCache) {
		opts.CacheTTL = cfg.Cache.TTL
	}

	svc, err := appreg.NewSpecService(ctx, opts)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, nil, fmt.Errorf("loading registry: %w", err)
	}

	cleanup := func() {
		svc.Close()
		if err := provider.Shutdown(context.Background()); err != nil {
			log.Warn(log.CatTrace, "shutting down tracing", "error", err.Error())
		}
	}
	return svc, cleanup, nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
