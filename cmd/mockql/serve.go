package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/broady/mockql"
	"github.com/broady/mockql/middleware"
	"github.com/broady/mockql/mock"
)

const shutdownTimeout = 5 * time.Second

type ServeCmd struct {
	Config      string `arg:"" optional:"" help:"Endpoint configuration file." default:"public/config/endpoints.json"`
	Port        int    `help:"Port to listen on." short:"p" env:"PORT" default:"3001"`
	Host        string `help:"Host to bind."`
	ControlPath string `help:"Path accepting new configurations." default:"${control_path}"`
	QueryPath   string `help:"GraphQL endpoint path." default:"${query_path}"`
	AdminPrefix string `help:"Prefix of the read-only admin endpoints." default:"${admin_prefix}"`
	MaxBody     int64  `help:"Maximum request body size in bytes (0 for no limit)." default:"1048576"`
	Seed        uint64 `help:"Seed for mock values (0 picks one from the clock)." env:"MOCKQL_SEED" default:"0"`
}

// handler loads the configuration and builds the app serving it.
func (c *ServeCmd) handler(logger *slog.Logger) (http.Handler, error) {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	m := mock.New(mock.WithSeed(seed), mock.WithLogger(logger))

	snap, err := mockql.LoadSnapshot(c.Config, m)
	if err != nil {
		return nil, err
	}
	store := mockql.NewStore(snap)
	reloader := mockql.NewReloader(c.Config, store, m).WithLogger(logger)

	app := mockql.NewApp(store, reloader).
		WithLogger(logger).
		WithMiddleware(middleware.Logging(logger)).
		WithMaxRequestBodySize(c.MaxBody).
		WithControlPath(c.ControlPath).
		WithQueryPath(c.QueryPath).
		WithAdminPrefix(c.AdminPrefix)

	logger.Info("configuration loaded",
		slog.String("path", c.Config),
		slog.Int("endpoints", snap.Len()),
		slog.Uint64("seed", seed))
	return app.Handler(), nil
}

func (c *ServeCmd) Run(logger *slog.Logger) error {
	h, err := c.handler(logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening",
			slog.String("addr", srv.Addr),
			slog.String("graphql", c.QueryPath),
			slog.String("control", c.ControlPath))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
