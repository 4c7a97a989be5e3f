package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/polymer/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var redisAddr string
	var redisDB int

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				target cache.Cache
				where  string
			)
			if redisAddr != "" {
				rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: redisAddr, DB: redisDB})
				if err != nil {
					return err
				}
				target, where = rc, "redis://"+redisAddr
			} else {
				dir, err := c.cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					c.ui.info("Cache is empty")
					return nil
				}
				fc, err := cache.NewFileCache(dir)
				if err != nil {
					return err
				}
				target, where = fc, dir
			}
			defer target.Close()

			clearer, ok := target.(cache.Clearer)
			if !ok {
				return fmt.Errorf("%s cannot be cleared", where)
			}
			count, err := clearer.Clear(ctx)
			if err != nil {
				return err
			}

			c.ui.success("Cleared %d cached entries", count)
			c.ui.detail("Location: %s", where)
			return nil
		},
	}

	cmd.Flags().StringVar(&redisAddr, "redis", "", "clear a Redis cache instead of the file cache")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "Redis database number")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(c.out, dir)
			return nil
		},
	}
}
