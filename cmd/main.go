package main

import (
	"context"
	"fmt"
	"os"

	"github.com/wooil/sheetsync/internal/clients/sheets"
	"github.com/wooil/sheetsync/internal/config"
	"github.com/wooil/sheetsync/internal/cron"
	"github.com/wooil/sheetsync/internal/db"
	"github.com/wooil/sheetsync/internal/handlers"
	"github.com/wooil/sheetsync/internal/logger"
	"github.com/wooil/sheetsync/internal/repos"
	"github.com/wooil/sheetsync/internal/server"
	"github.com/wooil/sheetsync/internal/services"
	"github.com/wooil/sheetsync/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Sheet registry
	log.Info("Loading sheet registry from main...")
	registryPath := utils.GetEnv("SHEET_REGISTRY_PATH", "", log)
	cfg, err := config.Load(registryPath, log)
	if err != nil {
		log.Error("Could not load sheet registry", "error", err)
		os.Exit(1)
	}

	// Mongo
	mongoService, err := db.NewMongoService(log)
	if err != nil {
		log.Error("Mongo init failed", "error", err)
		os.Exit(1)
	}
	defer mongoService.Close(context.Background())
	if err := mongoService.EnsureIndexes(context.Background()); err != nil {
		log.Warn("Index creation failed", "error", err)
	}
	theDB := mongoService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	keywordRepo := repos.NewKeywordRepo(theDB, log)
	rootKeywordRepo := repos.NewRootKeywordRepo(theDB, log)

	// Sheets client
	sheetsClient, err := sheets.NewClient(context.Background(), log)
	if err != nil {
		log.Error("Could not init sheets client", "error", err)
		os.Exit(1)
	}

	// Services
	log.Info("Setting up services from main...")
	statsService := services.NewStatsService(log, keywordRepo)
	keywordService := services.NewKeywordService(log, keywordRepo, rootKeywordRepo, statsService)
	syncService := services.NewSyncService(log, cfg, sheetsClient, keywordRepo, rootKeywordRepo)
	reconcileService := services.NewReconcileService(log, cfg, sheetsClient, keywordRepo)
	exportService := services.NewExportService(log, cfg, sheetsClient, keywordRepo, rootKeywordRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	keywordHandler := handlers.NewKeywordHandler(log, keywordService, statsService)
	syncHandler := handlers.NewSyncHandler(log, cfg, syncService, reconcileService, exportService)
	sheetHandler := handlers.NewSheetHandler(log, sheetsClient)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		KeywordHandler: keywordHandler,
		SyncHandler:    syncHandler,
		SheetHandler:   sheetHandler,
	})

	// Scheduler
	scheduler := cron.NewScheduler(log, cfg, syncService, reconcileService)
	jobs, err := scheduler.Start()
	if err != nil {
		log.Error("Could not start scheduler", "error", err)
		os.Exit(1)
	}
	if jobs > 0 {
		defer scheduler.Stop()
	}

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
