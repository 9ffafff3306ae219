package main

import (
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/blog-service/internal/config"
	"github.com/spec-kit/blog-service/internal/persistence"
	"github.com/spec-kit/blog-service/internal/service"
	"github.com/spec-kit/blog-service/internal/validation"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Store.Driver != config.StoreDriverPostgres {
			return errors.New("migrate requires STORE_DRIVER=postgres")
		}
		pg, err := persistence.NewPostgres(cmd.Context(), cfg.Postgres, logger)
		if err != nil {
			return err
		}
		defer pg.Close()
		return persistence.RunMigrations(cmd.Context(), pg.Pool, logger)
	},
}

var adminFlags struct {
	username string
	email    string
	password string
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	Example: `  innerplog create-admin --username root --email root@example.com --password 'Str0ngPass'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var v validation.Collector
		input := service.RegisterInput{
			Username: validation.Check(&v, "username", adminFlags.username, validation.Username()),
			Email:    validation.Check(&v, "email", adminFlags.email, validation.Email()),
			Password: validation.Check(&v, "password", adminFlags.password, validation.Password()),
		}
		if err := v.Err(); err != nil {
			return err
		}

		s, err := openStores(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer s.Close()

		svc := buildServices(cfg, s, logger)
		user, err := svc.auth.CreateAdmin(cmd.Context(), input)
		if err != nil {
			return err
		}
		logger.Info("admin created", zap.String("user_id", user.ID), zap.String("username", user.Username))
		return nil
	},
}

func init() {
	flags := createAdminCmd.Flags()
	flags.StringVar(&adminFlags.username, "username", "", "admin username")
	flags.StringVar(&adminFlags.email, "email", "", "admin email")
	flags.StringVar(&adminFlags.password, "password", "", "admin password")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	app := newHTTPApp(cfg, s, buildServices(cfg, s, logger), logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()), zap.String("store", cfg.Store.Driver))
		return app.Listen(cfg.App.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	return g.Wait()
}

