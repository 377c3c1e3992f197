package app

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/meur/cs2hub/internal/api"
	"github.com/meur/cs2hub/internal/config"
	"github.com/meur/cs2hub/internal/pkg/logger"
	"github.com/meur/cs2hub/internal/storage"
)

// Options wires the catalogue backend. The logger is configured by the caller
// before fx starts so that fx events are already routed through it.
func Options(conf *config.Server, additionalOpts ...fx.Option) []fx.Option {
	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Storage
		fx.Provide(newStore),

		// Servers
		fx.Provide(newAPI),
		fx.Provide(newHTTPServer),
		fx.Invoke(run),

		fx.StartTimeout(5 * time.Second),
		// Slightly above the HTTP shutdown timeout so the server's own deadline fires first.
		fx.StopTimeout(conf.ShutdownTimeout + time.Second),
	}

	return append(baseOpts, additionalOpts...)
}

func New(conf *config.Server, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(conf, additionalOpts...)...)
}

func newStore(conf *config.Server, lc fx.Lifecycle) (*storage.Store, error) {
	store, err := storage.New(conf.DBPath)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
	return store, nil
}

func newAPI(store *storage.Store, conf *config.Server) *api.Server {
	return api.New(store, conf.AllowedOrigins)
}

func newHTTPServer(handler *api.Server, conf *config.Server) *http.Server {
	return &http.Server{
		Addr:              conf.ServiceAddress,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// run listens on OnStart so a bad address fails startup, and serves in the background.
// The bound address is written back to srv.Addr, which resolves ":0" for tests.
func run(srv *http.Server, conf *config.Server, lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return errors.Wrapf(err, "listen on %s", srv.Addr)
			}
			srv.Addr = ln.Addr().String()

			log.Info().
				Str("evt.name", "infra.http.start").
				Str("address", srv.Addr).
				Str("database", conf.DBPath).
				Msg("catalogue API listening")

			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error().Err(err).Msg("server terminated unexpectedly")
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, conf.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
}
