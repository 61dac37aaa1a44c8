package cli

import (
	"context"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartnote/pkg/cache"
	"github.com/matzehuels/chartnote/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var redisURL string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear(cmd.Context(), cacheFlags{redis: redisURL})
		},
	}
	cmd.Flags().StringVar(&redisURL, "redis", "", "clear a redis cache instead (default $"+cache.RedisURLEnv+")")

	return cmd
}

func (c *CLI) runCacheClear(ctx context.Context, f cacheFlags) error {
	cc, err := c.newCache(ctx, f)
	if err != nil {
		return err
	}
	defer cc.Close()

	clearer, ok := cc.(cache.Clearer)
	if !ok {
		printInfo("Cache is disabled")
		return nil
	}
	n, err := clearer.Clear(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "clear cache")
	}

	printSuccess("Cleared %d cached entries", n)
	if url := f.redisURL(); url != "" {
		printDetail("Redis: %s", redactURL(url))
	} else if dir, err := cacheDir(); err == nil {
		printDetail("Directory: %s", dir)
	}
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "get cache dir")
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// redactURL hides the password of a redis URL.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "(invalid url)"
	}
	return u.Redacted()
}
