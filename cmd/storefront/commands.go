package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/go_cart/storefront/internal/config"
	"github.com/fjod/go_cart/storefront/internal/events"
	h "github.com/fjod/go_cart/storefront/internal/http"
	"github.com/fjod/go_cart/storefront/internal/logger"
	"github.com/fjod/go_cart/storefront/internal/shell"
	"github.com/fjod/go_cart/storefront/internal/storefront"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func shellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "interactive storefront on the terminal",
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := newApp(ctx, c)
			if err != nil {
				return err
			}
			defer app.Close()

			session := app.NewSession("")
			defer session.Close()

			return shell.New(session, os.Stdin, os.Stdout, app.log).Run(ctx)
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "storefront sessions over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "HTTP port (overrides STOREFRONT_HTTP_PORT)"},
		},
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := newApp(ctx, c)
			if err != nil {
				return err
			}
			defer app.Close()
			if c.IsSet("port") {
				app.cfg.HTTPPort = c.String("port")
			}

			sessions := h.NewSessions(func(id string) *storefront.Session {
				return app.NewSession(id)
			}, h.WithMaxSessions(app.cfg.MaxSessions), h.WithIdleTTL(app.cfg.SessionIdleTTL))
			defer sessions.Close()

			srv := &http.Server{
				Addr:         ":" + app.cfg.HTTPPort,
				Handler:      h.NewRouter(app.cfg, sessions, app.log),
				ReadTimeout:  10 * time.Second,
				WriteTimeout: app.cfg.RequestTimeout + 5*time.Second,
				IdleTimeout:  60 * time.Second,
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				app.log.Info("storefront API starting", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			})
			if app.cfg.SessionIdleTTL > 0 {
				g.Go(func() error {
					sessions.Run(gctx, time.Minute)
					return nil
				})
			}
			g.Go(func() error {
				<-gctx.Done()
				app.log.Info("shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("server forced to shutdown: %w", err)
				}
				return nil
			})

			err = g.Wait()
			app.log.Info("server exited")
			return err
		},
	}
}

func eventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "tail the storefront activity topic",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "group", Value: "storefront-events-tail", Usage: "consumer group id"},
		},
		Action: func(c *cli.Context) error {
			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if len(cfg.KafkaBrokers) == 0 {
				return errors.New("no kafka brokers configured, set STOREFRONT_KAFKA_BROKERS")
			}
			log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
			if err != nil {
				return err
			}
			defer log.Sync()

			consumer := events.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, c.String("group"), log)
			defer consumer.Close()

			return consumer.Run(ctx, func(e events.Event) {
				fmt.Fprintf(os.Stdout, "%s  %-22s  session=%s  %v\n",
					e.OccurredAt.Format(time.RFC3339), e.Type, e.Session, e.Data)
			})
		},
	}
}
