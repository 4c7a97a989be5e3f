package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/polymer/pkg/cache"
	"github.com/matzehuels/polymer/pkg/pipeline"
	"github.com/matzehuels/polymer/pkg/server"
)

type serveOpts struct {
	chain   chainFlags
	render  renderFlags
	addr    string
	redis   string
	redisDB int
	scope   string
	noCache bool
}

// serveCommand starts the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web viewer and HTTP API",
		Long: `Serve the browser viewer and the HTTP API. Chain and render flags set the
defaults for requests that omit a parameter.

Rendered pictures of reproducible requests are cached in the file cache, or in
Redis when --redis (or cache.redis_addr) is set.`,
		Example: `  polymer serve
  polymer serve --addr :9000 --redis localhost:6379`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var defaults pipeline.Options
			opts.chain.apply(cmd, c.Config, &defaults)
			opts.render.apply(cmd, c.Config, &defaults)
			if !cmd.Flags().Changed("addr") {
				opts.addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("redis") {
				opts.redis = c.Config.Cache.RedisAddr
			}
			if !cmd.Flags().Changed("redis-db") {
				opts.redisDB = c.Config.Cache.RedisDB
			}
			return c.runServe(cmd.Context(), defaults, &opts)
		},
	}

	opts.chain.register(cmd)
	opts.render.register(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for the artifact cache")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.scope, "cache-scope", "", "key prefix for deployments sharing one cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, defaults pipeline.Options, opts *serveOpts) error {
	if err := defaults.ValidateForGenerate(); err != nil {
		return err
	}
	defaults.Logger = nil

	ch, err := c.serverCache(ctx, opts)
	if err != nil {
		return err
	}

	var keyer cache.Keyer
	if opts.scope != "" {
		keyer = cache.NewScopedKeyer(nil, opts.scope+":")
	}
	runner := pipeline.NewRunner(ch, keyer, c.Logger)
	if ttl, err := c.Config.Cache.TTLDuration(); err == nil {
		runner.TTL = ttl
	}
	defer runner.Close()

	readTimeout, err := c.Config.Server.ReadTimeoutDuration()
	if err != nil {
		return err
	}
	srv := server.New(runner, c.Logger,
		server.WithDefaults(defaults),
		server.WithReadTimeout(readTimeout))

	c.ui.success("Serving polymer")
	c.ui.field("Address", StyleLink.Render("http://"+displayAddr(opts.addr)))
	return srv.ListenAndServe(ctx, opts.addr)
}

// serverCache picks Redis when configured, otherwise the file cache.
func (c *CLI) serverCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redis == "" {
		return c.newCache(false)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	rc, err := cache.NewRedisCache(connectCtx, cache.RedisOptions{Addr: opts.redis, DB: opts.redisDB})
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using redis cache", "addr", opts.redis, "db", opts.redisDB)
	return rc, nil
}

// displayAddr turns ":8080" into "localhost:8080" for printing.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
