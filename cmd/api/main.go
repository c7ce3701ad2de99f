package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	catalogHandler "github.com/MrJamesThe3rd/tally/internal/http/catalog"
	importHandler "github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	ledgerHandler "github.com/MrJamesThe3rd/tally/internal/http/ledger"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/points"
	snapshotStore "github.com/MrJamesThe3rd/tally/internal/points/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	mode, err := points.ParseMode(cfg.Ledger.Mode)
	if err != nil {
		slog.Error("failed to parse ledger mode", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	store := snapshotStore.New(db)
	if err := store.Init(ctx); err != nil {
		slog.Error("failed to init snapshot store", "error", err)
		os.Exit(1)
	}

	pointsService := points.NewService(mode, store)

	snap, err := store.Load(ctx)
	switch {
	case errors.Is(err, points.ErrNoSnapshot):
		slog.Info("no snapshot found, seeding default household data")

		snap = points.DefaultSnapshot(mode)
	case err != nil:
		slog.Error("failed to load snapshot", "error", err)
		os.Exit(1)
	}

	if err := pointsService.Restore(snap); err != nil {
		slog.Error("failed to restore snapshot", "error", err)
		os.Exit(1)
	}

	importService := importer.NewService()

	var (
		catalogH = catalogHandler.NewHandler(pointsService)
		ledgerH  = ledgerHandler.NewHandler(pointsService)
		importH  = importHandler.NewHandler(importService, pointsService)
	)

	router := tallyHttp.New(catalogH, ledgerH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "mode", mode)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
