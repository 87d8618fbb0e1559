package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"go.uber.org/zap"

	"lab-reservations/api"
	"lab-reservations/booking"
	"lab-reservations/calendar"
	"lab-reservations/config"
	"lab-reservations/database"
	"lab-reservations/docstore"
	"lab-reservations/ledger"
	"lab-reservations/reservation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config:", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatal("init logger:", err)
	}
	defer func() { _ = logger.Sync() }()

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("load facility timezone", zap.Error(err))
	}

	catalog, err := cfg.BuildCatalog(loc)
	if err != nil {
		logger.Fatal("build slot catalog", zap.Error(err))
	}

	ctx := context.Background()

	cal, err := calendar.NewGateway(ctx, cfg.CredentialsFile, cfg.CalendarID, loc)
	if err != nil {
		logger.Fatal("init calendar gateway", zap.Error(err))
	}

	var ledgerGateway reservation.LedgerGateway
	switch cfg.LedgerBackend {
	case "postgres":
		db, err := database.Connect(cfg.PostgresDSN)
		if err != nil {
			logger.Fatal("connect ledger database", zap.Error(err))
		}
		defer db.Close()
		ledgerGateway = ledger.NewPostgres(db)
	case "sheets":
		ledgerGateway, err = ledger.NewSheets(ctx, cfg.CredentialsFile, cfg.SpreadsheetID, cfg.SheetName)
		if err != nil {
			logger.Fatal("init sheets ledger", zap.Error(err))
		}
	default:
		logger.Fatal("unknown ledger backend", zap.String("backend", cfg.LedgerBackend))
	}

	var documents api.DocumentStore
	if cfg.CloudinaryCloudName != "" {
		documents, err = docstore.New(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			logger.Fatal("init document store", zap.Error(err))
		}
	} else {
		logger.Info("document store not configured, uploads disabled")
	}

	resolver := booking.NewResolver(loc)
	coordinator := reservation.NewCoordinator(catalog, resolver, cal, ledgerGateway, cfg.CallTimeout, logger)

	service := api.NewAPI(catalog, resolver, cal, coordinator, documents, loc, logger)
	service.RegisterRoutes()

	logger.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("timezone", loc.String()),
		zap.String("catalog_mode", cfg.CatalogMode),
		zap.String("ledger_backend", cfg.LedgerBackend),
	)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), service.Handler()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
