package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/lexreg/internal/catalog"
	"github.com/zjrosen/lexreg/internal/flags"
	"github.com/zjrosen/lexreg/internal/infrastructure/sqlite"
	"github.com/zjrosen/lexreg/internal/log"
	"github.com/zjrosen/lexreg/internal/presentation"
	"github.com/zjrosen/lexreg/internal/pubsub"
)

var errInvalidCatalog = errors.New("catalog validation failed")

var exportOut string

var catalogValidateCmd = &cobra.Command{
	Use:   "catalog:validate [path...]",
	Short: "Validate catalog sources",
	Long: `Load catalog sources and build their factories, reporting any error.

A path may be a directory holding catalogs/<group>/catalog.yaml, a single
catalog.yaml file or an SQLite catalog database (.db). Without paths every
configured source is validated, then the merged registry.

Examples:
  lexreg catalog:validate
  lexreg catalog:validate ./legal ./extra/catalog.yaml ./catalog.db`,
	RunE: runCatalogValidate,
}

var catalogExportCmd = &cobra.Command{
	Use:   "catalog:export --out <file>",
	Short: "Export the merged catalog to SQLite or YAML",
	Long: `Write the merged catalog of every configured source to a file.

The output is an SQLite catalog database, unless the file name ends in
.yaml or .yml.

Examples:
  lexreg catalog:export --out catalog.db
  lexreg catalog:export --out merged.yaml`,
	RunE: runCatalogExport,
}

var catalogWatchCmd = &cobra.Command{
	Use:   "catalog:watch",
	Short: "Reload catalogs when they change and report each reload",
	Long: `Watch the catalog directory, the user catalog directory and the catalog
database and reload the registry on every change. Requires the catalog-watch flag.

Example:
  lexreg config:flag catalog-watch on
  lexreg catalog:watch`,
	RunE: runCatalogWatch,
}

func init() {
	catalogExportCmd.Flags().StringVar(&exportOut, "out", "", "output file (required)")
	_ = catalogExportCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(catalogValidateCmd, catalogExportCmd, catalogWatchCmd)
}

// validateCatalog builds both factories of c and reports the outcome.
func validateCatalog(source string, c *catalog.Catalog, err error) presentation.ValidationDTO {
	result := presentation.ValidationDTO{Source: source}
	if err == nil {
		_, _, err = c.Factories()
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Valid = true
	result.Concepts, result.Articles = c.Len()
	return result
}

// loadPath loads one catalog from a directory, a catalog.yaml file or a database.
func loadPath(ctx context.Context, path string) (*catalog.Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return catalog.LoadFromYAML(os.DirFS(path))
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		content, err := os.ReadFile(path) //nolint:gosec // G304: path is a user-supplied catalog file
		if err != nil {
			return nil, err
		}
		return catalog.LoadFromBytes(content, path)
	default:
		return sqlite.LoadCatalog(ctx, path)
	}
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	var results []presentation.ValidationDTO

	if len(args) > 0 {
		for _, path := range args {
			c, err := loadPath(ctx, path)
			results = append(results, validateCatalog(path, c, err))
		}
	} else {
		sources := sourcesFromConfig()
		if sources.Builtin {
			c, err := catalog.Builtin()
			results = append(results, validateCatalog("builtin", c, err))
		}
		if sources.Dir != "" {
			c, err := catalog.LoadFromYAML(os.DirFS(sources.Dir))
			results = append(results, validateCatalog(sources.Dir, c, err))
		}
		if sources.UserDir != "" {
			c, err := catalog.LoadUserCatalogFromDir(sources.UserDir)
			if c != nil || err != nil {
				results = append(results, validateCatalog(sources.UserDir, c, err))
			}
		}
		if sources.SQLitePath != "" {
			c, err := sqlite.LoadCatalog(ctx, sources.SQLitePath)
			results = append(results, validateCatalog(sources.SQLitePath, c, err))
		}
		c, err := sources.Load(ctx)
		results = append(results, validateCatalog("merged", c, err))
	}

	formatter := presentation.NewFormatter(cmd.OutOrStdout(), cfg.Output.Format)
	if err := formatter.FormatValidation(results); err != nil {
		return err
	}
	for _, r := range results {
		if !r.Valid {
			return errInvalidCatalog
		}
	}
	return nil
}

func runCatalogExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	c, err := sourcesFromConfig().Load(ctx)
	if err != nil {
		return err
	}
	if _, _, err := c.Factories(); err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(exportOut)) {
	case ".yaml", ".yml":
		data, err := c.EncodeYAML()
		if err != nil {
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", exportOut, err)
		}
	default:
		if err := sqlite.SaveCatalog(ctx, exportOut, c); err != nil {
			return err
		}
	}

	concepts, articles := c.Len()
	log.Info(log.CatCLI, "exported catalog", "out", exportOut, "concepts", concepts, "articles", articles)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "exported %d concepts and %d articles to %s\n", concepts, articles, exportOut)
	return err
}

func runCatalogWatch(cmd *cobra.Command, _ []string) error {
	if !featureFlags.Enabled(flags.FlagCatalogWatch) {
		return fmt.Errorf("catalog watching is disabled; enable it with: lexreg config:flag %s on", flags.FlagCatalogWatch)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, cleanup, err := newSpecService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	events := svc.Subscribe(ctx)
	if err := svc.Watch(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "watching catalogs (generation %d), press Ctrl+C to stop\n", svc.Generation())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.Type {
			case pubsub.ReloadedEvent:
				_, _ = fmt.Fprintf(out, "reloaded generation %d: %d concepts, %d articles\n",
					ev.Payload.Generation, ev.Payload.Concepts, ev.Payload.Articles)
			case pubsub.ReloadFailedEvent:
				_, _ = fmt.Fprintf(out, "reload failed, keeping generation %d: %v\n", ev.Payload.Generation, ev.Payload.Err)
			}
		}
	}
}
