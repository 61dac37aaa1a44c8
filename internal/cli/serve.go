package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartnote/internal/server"
	"github.com/matzehuels/chartnote/pkg/session"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	cache      cacheFlags
	addr       string        // listen address
	sessionDir string        // persist sessions as files below this directory
	sessionTTL time.Duration // session lifetime after the last update
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: "127.0.0.1:8080", sessionTTL: session.DefaultTTL}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the preview server",
		Long: `Serve starts an HTTP server that renders annotated charts on request.

Post a document to /sessions to open a session, then fetch
/sessions/{id}/render.svg (or .png, .pdf, .json) after every edit. Rendered
artifacts are cached per session; use --redis to share the cache between
several servers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	opts.cache.register(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.sessionDir, "session-dir", "", "store sessions as files in this directory (default in memory)")
	cmd.Flags().DurationVar(&opts.sessionTTL, "session-ttl", opts.sessionTTL, "session lifetime after the last update")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	cc, err := c.newCache(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer cc.Close()

	var store session.Store = session.NewMemoryStore()
	if opts.sessionDir != "" {
		fs, err := session.NewFileStore(opts.sessionDir)
		if err != nil {
			return err
		}
		store = fs
	}

	srv := server.New(server.Config{
		Store:  store,
		Cache:  cc,
		Logger: loggerFromContext(ctx),
		TTL:    opts.sessionTTL,
	})

	storeDesc := "memory"
	if opts.sessionDir != "" {
		storeDesc = opts.sessionDir
	}
	printSuccess("Serving on %s", StyleLink.Render("http://"+opts.addr))
	printKeyValue("sessions", storeDesc)
	printKeyValue("session ttl", opts.sessionTTL.String())
	printNextStep("Open a session", "curl --data-binary @chart.yaml -H 'Content-Type: application/yaml' http://"+opts.addr+"/sessions")
	return srv.ListenAndServe(ctx, opts.addr)
}
