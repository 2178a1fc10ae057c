package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bingocards/pkg/archive"
	"github.com/matzehuels/bingocards/pkg/config"
	"github.com/matzehuels/bingocards/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr, redisAddr, mongoURI string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve strip generation over HTTP.

  POST /strips                        generate and archive a strip
  GET  /strips/{id}                   archived strip as JSON
  GET  /strips/{id}/render.{format}   svg, json, png or pdf

--redis and --mongo override the cache and archive backends from the
config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if redisAddr != "" {
				cfg.Cache.Backend = config.BackendRedis
				cfg.Cache.RedisAddr = redisAddr
			}
			if mongoURI != "" {
				cfg.Archive.Backend = config.BackendMongo
				cfg.Archive.MongoURI = mongoURI
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			runner, err := c.newRunner(ctx, cfg, runnerOpts{})
			if err != nil {
				return err
			}
			defer runner.Close()
			if runner.Store == nil {
				logger.Warn("archive disabled in config; keeping strips in memory")
				runner.Store = archive.NewMemoryStore()
			}

			srv, err := server.New(runner, logger)
			if err != nil {
				return err
			}
			logger.Info("starting server",
				"addr", cfg.Server.Addr,
				"cache", cfg.Cache.Backend,
				"archive", cfg.Archive.Backend)
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the artifact cache")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for the strip archive")
	return cmd
}
