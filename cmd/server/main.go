package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/johndoniego/erudite/internal/catalog"
	"github.com/johndoniego/erudite/internal/config"
	"github.com/johndoniego/erudite/internal/database"
	"github.com/johndoniego/erudite/internal/events"
	"github.com/johndoniego/erudite/internal/handler"
	"github.com/johndoniego/erudite/internal/jobs"
	"github.com/johndoniego/erudite/internal/service"
	"github.com/johndoniego/erudite/internal/store"
)

var errTerminated = errors.New("terminated")

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := database.Open(ctx, database.OpenConfig{
		Driver:        cfg.Storage.Driver,
		Path:          cfg.Storage.Path,
		QuotaBytes:    cfg.Storage.QuotaBytes,
		WatchInterval: cfg.Storage.WatchInterval,
		SurrealDB: database.Config{
			Host:      cfg.Database.Host,
			Port:      cfg.Database.Port,
			User:      cfg.Database.User,
			Password:  cfg.Database.Password,
			Namespace: cfg.Database.Namespace,
			Database:  cfg.Database.Database,
		},
	})
	if err != nil {
		slog.Error("failed to open storage", slog.String("driver", cfg.Storage.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("storage ready", slog.String("driver", cfg.Storage.Driver))

	// Collection store and change fan-out
	hub := events.NewHub()
	defer hub.Close()
	st := store.New(db, hub,
		store.WithLogger(logger),
		store.WithNotifier(store.NewHubNotifier(hub, logger)),
		store.WithMembershipLimit(cfg.Store.MembershipLimit),
	)
	defer st.Close()

	cat := catalog.MustLoad()

	// Initialize services
	communityService := service.NewCommunityService(service.CommunityServiceConfig{
		Store:           st,
		Catalog:         cat,
		MembershipLimit: cfg.Store.MembershipLimit,
	})
	postService := service.NewPostService(service.PostServiceConfig{
		Store:       st,
		Communities: communityService,
	})
	savedService := service.NewSavedService(service.SavedServiceConfig{
		Store: st,
		Posts: postService,
	})
	sessionService := service.NewSessionService(service.SessionServiceConfig{
		Store: st,
	})
	profileService := service.NewProfileService(service.ProfileServiceConfig{
		Store: st,
	})
	peopleService := service.NewPeopleService(service.PeopleServiceConfig{
		Store:    st,
		Catalog:  cat,
		Profiles: profileService,
	})
	resetService := service.NewResetService(st, logger)

	router := handler.NewRouter(handler.RouterConfig{
		Store:          st,
		Hub:            hub,
		DB:             db,
		Communities:    communityService,
		Posts:          postService,
		Saved:          savedService,
		Sessions:       sessionService,
		Profiles:       profileService,
		People:         peopleService,
		Reset:          resetService,
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxImageBytes:  cfg.Media.MaxImageBytes,
		Heartbeat:      handler.DefaultHeartbeat,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	var poller *jobs.Poller
	if cfg.Poller.Enabled {
		keys := store.FixedKeys()
		for _, c := range cat.Communities() {
			keys = append(keys, store.CommunityPostsKey(c.ID))
		}
		poller = jobs.NewPoller(st, cfg.Poller.Interval, logger, keys...)
	}

	gr, gctx := errgroup.WithContext(ctx)

	gr.Go(func() error {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if poller != nil {
		gr.Go(func() error {
			poller.Start()
			<-gctx.Done()
			poller.Stop()
			return nil
		})
	}

	gr.Go(func() error {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigs)

		select {
		case <-gctx.Done():
		case sig := <-sigs:
			slog.Info("received signal", slog.String("signal", sig.String()))
		}

		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced to shutdown", slog.String("error", err.Error()))
		}
		return errTerminated
	})

	if err := gr.Wait(); err != nil && !errors.Is(err, errTerminated) {
		slog.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("server exited")
}
