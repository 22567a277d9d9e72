package cli

import (
	"github.com/spf13/cobra"

	"github.com/mvoelker/tourmaline/internal/server"
	"github.com/mvoelker/tourmaline/pkg/cache"
	"github.com/mvoelker/tourmaline/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP solve API",
		Long: `Serve starts an HTTP server exposing the solver. POST /api/solve takes a
distance matrix or instance text and returns the optimal tour; POST
/api/render returns a rendered artifact; GET /healthz answers probes.
Solutions are memoized in memory for the lifetime of the process.`,
		Example: `  tourmaline serve
  tourmaline serve --addr :9090
  tourmaline serve --no-cache`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr := c.Config.Server.Addr
			if cmd.Flags().Changed("addr") {
				listenAddr = addr
			}

			store := cache.NewMemoryCache(c.Config.Cache.MaxEntries)
			if noCache {
				store = cache.NewNullCache()
			}

			runner := pipeline.NewRunner(store, nil, c.Logger)
			runner.SolveTTL = c.Config.Cache.TTL.Duration
			defer runner.Close()

			printInfo("Listening on %s", StyleHighlight.Render(listenAddr))
			printKeyValue("Health", StyleLink.Render("http://localhost"+portOf(listenAddr)+"/healthz"))
			printNextStep("Try", `curl -X POST localhost`+portOf(listenAddr)+`/api/solve -d '{"matrix":[[0,10,15],[10,0,35],[15,35,0]]}'`)

			return server.New(runner, c.Logger).ListenAndServe(cmd.Context(), listenAddr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the in-memory result cache")

	return cmd
}

// portOf extracts the ":port" suffix of a listen address for display.
func portOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i:]
		}
	}
	return addr
}
