package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lifeguide/internal/platform/tui"
	"github.com/vovakirdan/lifeguide/internal/platform/web"
)

func newServeCmd() *cobra.Command {
	var (
		sshAddr     string
		httpAddr    string
		hostKey     string
		idleTimeout int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve levels over SSH and HTTP",
		Long: `Start an SSH server where every connection gets its own level picker and
board, and optionally an HTTP server with level listings and PNG frames.
Results are shared between all players.

HTTP endpoints:
  GET /levels                          - Level list (JSON)
  GET /levels/{id}                     - Level detail with ASCII preview
  GET /levels/{id}/frame.png?gen=N     - Frame after N generations
  GET /levels/{id}/results             - Best solves
  GET /rules                           - Registered automaton rules

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.lifeguide/host_key

Examples:
  lifeguide serve                        # SSH on :23234
  lifeguide serve --ssh :2222 --http :8080
  lifeguide serve --ssh "" --http :8080  # HTTP only

Users can connect with:
  ssh localhost -p 23234`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger := loggerFromContext(ctx)

			if sshAddr == "" && httpAddr == "" {
				return errors.New("nothing to serve: set --ssh or --http")
			}

			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			levels, err := loadLevels(ctx, cfg)
			if err != nil {
				return err
			}
			store := openStore(ctx)
			if store != nil {
				defer store.Close()
			}

			errCh := make(chan error, 2)
			running := 0

			if sshAddr != "" {
				sshCfg := tui.DefaultSSHServerConfig()
				sshCfg.Address = sshAddr
				sshCfg.HostKeyPath = hostKey
				sshCfg.IdleTimeout = time.Duration(idleTimeout) * time.Minute
				sshCfg.Levels = levels
				sshCfg.Config = cfg

				srv, err := tui.NewSSHServer(sshCfg, store, logger)
				if err != nil {
					return err
				}
				running++
				go func() { errCh <- srv.ListenAndServe(ctx) }()
			}

			if httpAddr != "" {
				handler := web.NewServer(levels,
					web.WithStore(store),
					web.WithConfig(cfg),
					web.WithLogger(logger.WithPrefix("lifeguide-http")),
				).Router()
				running++
				go func() { errCh <- serveHTTP(ctx, httpAddr, handler) }()
				logger.Info("starting HTTP server", "address", httpAddr)
			}

			var first error
			for ; running > 0; running-- {
				if err := <-errCh; err != nil && first == nil {
					first = err
					stop()
				}
			}
			return first
		},
	}

	cmd.Flags().StringVar(&sshAddr, "ssh", ":23234", "SSH server address (empty disables SSH)")
	cmd.Flags().StringVar(&httpAddr, "http", "", "HTTP server address (empty disables HTTP)")
	cmd.Flags().StringVar(&hostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	cmd.Flags().IntVar(&idleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	return cmd
}

// serveHTTP runs an HTTP server until ctx is done.
func serveHTTP(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
