package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"overol-konfigurator-backend/internal/auth"
	"overol-konfigurator-backend/internal/catalog"
	"overol-konfigurator-backend/internal/env"
	"overol-konfigurator-backend/internal/handler"
	"overol-konfigurator-backend/internal/pdf"
	"overol-konfigurator-backend/internal/repository"
	csvrepo "overol-konfigurator-backend/internal/repository/csv"
	pgrepo "overol-konfigurator-backend/internal/repository/postgres"
	sqliterepo "overol-konfigurator-backend/internal/repository/sqlite"
	"overol-konfigurator-backend/internal/routes"
	"overol-konfigurator-backend/internal/service"
	"overol-konfigurator-backend/internal/session"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := env.Load()
	if err != nil {
		logger.Fatal("konfiguration ungültig", zap.Error(err))
	}
	logger.Info("konfiguration geladen",
		zap.String("data_source", cfg.DataSource),
		zap.String("server_addr", cfg.ServerAddr),
		zap.Float64("rate_limit", cfg.RateLimit),
		zap.Strings("cors_origins", cfg.CORSOrigins),
		zap.Duration("session_ttl", cfg.SessionTTL),
		zap.Int("max_sessions", cfg.MaxSessions),
	)

	store := mustInitStore(cfg, logger)
	defer func() { _ = store.Close() }()
	mustSeed(cfg, store, logger)

	authn := mustInitAuth(cfg, logger)

	zones := catalog.MustZones()
	catalogSvc := service.NewCatalogService(zones, store, store, logger)
	orderSvc := service.NewOrderService(catalogSvc, store, pdf.NewRenderer("overol-konfigurator"), logger)
	sessions := session.NewStore(zones, cfg.SessionTTL, cfg.MaxSessions, logger)
	sessionSvc := service.NewSessionService(sessions, catalogSvc, orderSvc, logger)
	adminSvc := service.NewAdminService(authn, store, store, logger)

	r := chi.NewRouter()
	routes.Setup(r, routes.Handlers{
		Catalog:  handler.NewCatalogHandler(catalogSvc, logger),
		Orders:   handler.NewOrderHandler(orderSvc, logger),
		Sessions: handler.NewSessionHandler(sessionSvc, logger),
		Admin:    handler.NewAdminHandler(adminSvc, logger),
	}, logger, routes.Options{
		RateLimit:   cfg.RateLimit,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server wird gestartet", zap.String("adresse", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server wird heruntergefahren")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("erzwungenes herunterfahren", zap.Error(err))
	}
	logger.Info("server gestoppt", zap.Int("offene_sitzungen", sessions.Len()))
}

// mustInitStore öffnet je nach DATA_SOURCE den SQLite- oder Postgres-Store.
func mustInitStore(cfg env.Config, logger *zap.Logger) repository.Store {
	switch cfg.DataSource {
	case env.SourcePostgres:
		store, err := pgrepo.NewStore(cfg.PostgresDSN, logger)
		if err != nil {
			logger.Fatal("postgres-store konnte nicht initialisiert werden", zap.Error(err))
		}
		return store

	default:
		store, err := sqliterepo.NewStore(cfg.SQLiteDSN, logger)
		if err != nil {
			logger.Fatal("sqlite-store konnte nicht initialisiert werden", zap.Error(err))
		}
		return store
	}
}

// mustSeed legt Standard-Stofftypen und -Farben an und importiert optional
// Farben aus COLORS_CSV_PATH. Vorhandene Einträge bleiben unverändert.
func mustSeed(cfg env.Config, store repository.Store, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fabricTypes := catalog.DefaultFabricTypes()
	colors := catalog.DefaultColors()

	if cfg.ColorsCSVPath != "" {
		imported, err := csvrepo.LoadColorsFile(cfg.ColorsCSVPath, logger)
		if err != nil {
			logger.Fatal("farbimport fehlgeschlagen", zap.Error(err))
		}
		known := make(map[string]struct{}, len(fabricTypes))
		for _, ft := range fabricTypes {
			known[ft.ID] = struct{}{}
		}
		for _, c := range imported {
			if _, ok := known[c.FabricType]; !ok {
				logger.Warn("farbe mit unbekanntem stofftyp übersprungen",
					zap.String("id", c.ID), zap.String("stofftyp", c.FabricType))
				continue
			}
			colors = append(colors, c)
		}
	}

	if err := repository.Seed(ctx, store, fabricTypes, colors); err != nil {
		logger.Fatal("katalog konnte nicht angelegt werden", zap.Error(err))
	}
}

// mustInitAuth baut den Authenticator der Farbverwaltung. Ohne Passwort
// bleibt die Verwaltung gesperrt.
func mustInitAuth(cfg env.Config, logger *zap.Logger) *auth.Authenticator {
	hash := cfg.AdminPasswordHash
	if hash == "" && cfg.AdminPassword != "" {
		var err error
		hash, err = auth.HashPassword(cfg.AdminPassword)
		if err != nil {
			logger.Fatal("admin-passwort konnte nicht gehasht werden", zap.Error(err))
		}
	}

	a, err := auth.New(hash, cfg.JWTSecret, cfg.AdminTokenTTL)
	if err != nil {
		logger.Fatal("authentifizierung konnte nicht initialisiert werden", zap.Error(err))
	}
	if !a.Enabled() {
		logger.Warn("kein admin-passwort konfiguriert, farbverwaltung ist gesperrt")
	}
	if cfg.JWTSecret == "" {
		logger.Info("kein JWT_SECRET gesetzt, tokens gelten nur bis zum neustart")
	}
	return a
}
