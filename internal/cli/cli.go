// Package cli implements the stakemap command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stakemap/pkg/buildinfo"
	"github.com/matzehuels/stakemap/pkg/cache"
	"github.com/matzehuels/stakemap/pkg/config"
	"github.com/matzehuels/stakemap/pkg/errors"
	"github.com/matzehuels/stakemap/pkg/observability"
	"github.com/matzehuels/stakemap/pkg/pipeline"
	"github.com/matzehuels/stakemap/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. Debug level also routes pipeline
// and cache events to the logger.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.Register(&logHooks{logger: c.Logger})
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "stakemap maps how project modules relate",
		Long:         `stakemap builds relationship graphs between project modules and their features, from shared stakeholders or explicit connections, and lets you explore, serve and export them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.Path()+")")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file once.
func (c *CLI) loadConfig() error {
	if c.config != nil {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	return nil
}

// cfg returns the loaded config, or defaults when none was loaded.
func (c *CLI) cfg() *config.Config {
	if c.config == nil {
		c.config = config.Default()
	}
	return c.config
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. A dataset path argument
// takes precedence over the [source] section.
func (c *CLI) newRunner(ctx context.Context, dataset string, noCache bool) (*pipeline.Runner, error) {
	cfg := c.cfg()

	src, err := newSource(ctx, cfg, dataset)
	if err != nil {
		return nil, err
	}

	ch := c.newCache(ctx, cfg, noCache)
	// Snapshots drawn by an older binary may differ, so keys are scoped to
	// the running version.
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	runner := pipeline.NewRunner(src, ch, keyer, c.Logger)
	if _, isFile := src.(*source.FileSource); !isFile {
		runner.DatasetTTL = cfg.Cache.TTL.Duration
	}
	return runner, nil
}

func newSource(ctx context.Context, cfg *config.Config, dataset string) (source.Source, error) {
	if dataset != "" {
		return source.NewFileSource(dataset)
	}
	switch cfg.Source.Kind {
	case config.SourceMongo:
		return source.NewMongoSource(ctx, cfg.Source.MongoURI, cfg.Source.Database)
	default:
		if cfg.Source.Path == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "no dataset given: pass a .json or .toml file or set [source] in %s", config.Path())
		}
		return source.NewFileSource(cfg.Source.Path)
	}
}

// newCache opens the configured backend. An unavailable cache degrades to
// no caching with a warning.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache()
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, cfg.Cache.Prefix)
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "error", err)
			return cache.NewNullCache()
		}
		return rc
	default:
		fc, err := cache.NewFileCache(cfg.Cache.Dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable, caching disabled", "error", err)
			return cache.NewNullCache()
		}
		return fc
	}
}

// datasetArg returns the optional positional dataset path.
func datasetArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
