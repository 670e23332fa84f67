package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/listr/internal/auth"
	"github.com/mark3labs/listr/internal/config"
	"github.com/mark3labs/listr/internal/listing"
	"github.com/mark3labs/listr/internal/logger"
	"github.com/mark3labs/listr/internal/media"
	"github.com/mark3labs/listr/internal/nats"
)

// app holds the services every listing command needs.
type app struct {
	cfg      *config.Config
	user     auth.User
	nats     *nats.Embedded
	store    *listing.Store
	listings *listing.Listings
	media    *media.Service
	previews *media.PreviewRegistry
	loader   *media.Loader
}

// openApp loads the config, starts the embedded NATS server and wires the
// listing and image services on top of it.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := configureLogger(cfg); err != nil {
		return nil, err
	}

	user, err := auth.Current(cfg.AuthToken, cfg.AuthSecret, cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current user: %w", err)
	}

	e, err := nats.Open(ctx, filepath.Join(cfg.DataDir, "nats"))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	storage, err := media.NewStorage(cfg, media.Backends{Objects: e.Objects})
	if err != nil {
		_ = e.Close()
		return nil, fmt.Errorf("failed to create image storage: %w", err)
	}

	store := listing.NewStoreFromEmbedded(e)
	previews := media.NewPreviewRegistry()
	objects := media.NewObjectStorage(e.Objects, cfg.Storage.BaseURL)

	logger.Debug("Opened listr data dir %s (storage: %s, user: %q)", cfg.DataDir, cfg.Storage.Backend, user.ID)
	return &app{
		cfg:      cfg,
		user:     user,
		nats:     e,
		store:    store,
		listings: listing.NewListings(store),
		media:    media.NewService(storage, store, cfg.Storage.PlaceholderURL),
		previews: previews,
		loader:   media.NewLoader(media.WithObjects(objects), media.WithPreviews(previews)),
	}, nil
}

func configureLogger(cfg *config.Config) error {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	logger.Default.SetLevel(level)
	if cfg.LogFile != "" {
		if err := logger.Default.SetFile(cfg.LogFile); err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
	}
	return nil
}

// Close revokes outstanding previews and stops the NATS server.
func (a *app) Close() {
	if n := a.previews.RevokeAll(); n > 0 {
		logger.Debug("Revoked %d preview URL(s)", n)
	}
	if err := a.nats.Close(); err != nil {
		logger.Warn("Error during shutdown: %v", err)
	}
}

// withApp runs fn with an open app and closes it afterwards.
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// requireUser fails for commands that act on behalf of a user.
func (a *app) requireUser() error {
	if a.user.Anonymous() {
		return fmt.Errorf("no user configured: set user_id or auth_token (see 'listr setup')")
	}
	return nil
}
