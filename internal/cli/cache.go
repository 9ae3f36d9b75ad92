package cli

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stakemap/pkg/cache"
	"github.com/matzehuels/stakemap/pkg/config"
	"github.com/matzehuels/stakemap/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached datasets and snapshots",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry from the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg()
			if cfg.Cache.Backend == config.CacheNone {
				printInfo("Caching is disabled")
				return nil
			}

			ch := c.newCache(cmd.Context(), cfg, false)
			defer ch.Close()

			if _, null := ch.(cache.NullCache); null {
				return errors.New(errors.ErrCodeCache, "%s cache is unavailable", cfg.Cache.Backend)
			}
			clearer, ok := ch.(cache.Clearer)
			if !ok {
				printInfo("Nothing to clear")
				return nil
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return errors.Wrap(errors.ErrCodeCache, err, "clear %s cache", cfg.Cache.Backend)
			}

			printSuccess("Cleared %s cache", cfg.Cache.Backend)
			printDetail("%s", cacheLocation(cfg))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			printLine(cacheLocation(c.cfg()))
			return nil
		},
	}
}

// cacheLocation describes where entries live: a directory or a Redis prefix.
func cacheLocation(cfg *config.Config) string {
	if cfg.Cache.Backend == config.CacheRedis {
		return cfg.Cache.Prefix + "* on " + redactedRedis(cfg.Cache.RedisURL)
	}
	return cfg.Cache.Dir
}

// redactedRedis reduces a Redis URL to host and database number.
func redactedRedis(url string) string {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return "redis"
	}
	return fmt.Sprintf("redis://%s/%d", opts.Addr, opts.DB)
}
