package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"AnimeTrackserver/internal/auth"
	"AnimeTrackserver/internal/config"
	"AnimeTrackserver/internal/email"
	"AnimeTrackserver/internal/httpapi"
	"AnimeTrackserver/internal/service"
	"AnimeTrackserver/internal/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger := newLogger(cfg)

	var (
		authSvc      *service.AuthService
		catalogSvc   *service.CatalogService
		watchListSvc *service.WatchListService
		friendsSvc   *service.FriendsService
		usersSvc     *service.UserService
		profileSvc   *service.ProfileService
		dbPing       func(context.Context) error
	)

	tokens := auth.NewTokenCodec([]byte(cfg.JWTSecret), cfg.TokenTTL)

	if cfg.DBDSN != "" {
		if err := postgres.Migrate(cfg.DBDSN); err != nil {
			logger.Error("db migrate failed", "err", err)
			os.Exit(1)
		}

		pgPool, err := postgres.Open(context.Background(), cfg.DBDSN)
		if err != nil {
			logger.Error("db open failed", "err", err)
			os.Exit(1)
		}
		defer pgPool.Close()

		users := postgres.NewUsersStore(pgPool)
		animes := postgres.NewAnimesStore(pgPool)
		watchLists := postgres.NewWatchListsStore(pgPool)
		friendships := postgres.NewFriendshipsStore(pgPool)

		authSvc = &service.AuthService{Users: users, Tokens: tokens}
		catalogSvc = &service.CatalogService{Animes: animes}
		watchListSvc = &service.WatchListService{Animes: animes, WatchLists: watchLists}
		friendsSvc = &service.FriendsService{Users: users, Friendships: friendships}
		usersSvc = &service.UserService{Users: users}
		profileSvc = &service.ProfileService{Users: users, WatchLists: watchLists}
		dbPing = pgPool.Ping
	}

	if !cfg.SMTPConfigured() {
		logger.Warn("smtp not configured, contact form will fail")
	}
	contactSvc := &service.ContactService{
		Mail: &email.Sender{Settings: email.SMTPSettings{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			TLSMode:  cfg.SMTP.TLSMode,
		}},
		OperatorEmail: cfg.ContactEmail,
	}

	router := httpapi.NewRouter(httpapi.RouterOpts{
		Logger:     logger,
		IsProd:     cfg.IsProd(),
		DBPing:     dbPing,
		Tokens:     tokens,
		Auth:       authSvc,
		Catalog:    catalogSvc,
		WatchLists: watchListSvc,
		Friends:    friendsSvc,
		Users:      usersSvc,
		Profile:    profileSvc,
		Contact:    contactSvc,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "env", cfg.Env, "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
