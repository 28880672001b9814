package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sigdoc/internal/server"
)

// serveCommand serves rendered documentation over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags renderFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve <docs.json>",
		Short: "Serve documentation over HTTP",
		Long: `Serve renders documentation on request. Pages are HTML by default; add
?format=json or ?format=text to any module URL. Rendered output is cached
with the configured backend, so several instances can share a Redis cache.`,
		Example: `  sigdoc serve docs.json --addr :8080
  curl localhost:8080/modules/Maybe?format=text`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Serve.Addr
			}

			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			src, err := runner.Load(ctx, args[0])
			if err != nil {
				return err
			}

			opts := c.options(flags, "")
			srv := server.New(runner, src, opts, loggerFromContext(ctx))

			printInfo("Serving %d modules on %s", len(src.Modules), StyleLink.Render("http://"+displayAddr(addr)))
			err = srv.ListenAndServe(ctx, addr)
			if errors.Is(err, context.Canceled) || errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
