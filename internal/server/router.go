package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wooil/sheetsync/internal/handlers"
	"github.com/wooil/sheetsync/internal/middleware"
)

type RouterConfig struct {
	KeywordHandler *handlers.KeywordHandler
	SyncHandler    *handlers.SyncHandler
	SheetHandler   *handlers.SheetHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))
	router.Use(middleware.RequestID())

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Keywords
		api.GET("/keywords", cfg.KeywordHandler.List)
		api.POST("/keywords", cfg.KeywordHandler.Replace)
		api.PATCH("/keywords", cfg.KeywordHandler.UpdateVisibility)
		api.GET("/keywords/stats", cfg.KeywordHandler.Stats)
		api.GET("/keywords/company/:name", cfg.KeywordHandler.ByCompany)
		api.POST("/keywords/sync", cfg.SyncHandler.SyncKeywords)
		api.POST("/keywords/import", cfg.SyncHandler.ImportVisibility)
		api.POST("/keywords/export", cfg.SyncHandler.ExportKeywords)
		api.POST("/keywords/pet", cfg.SyncHandler.ExportPet)

		// Root keywords
		api.GET("/root-keywords", cfg.KeywordHandler.ListRoot)
		api.POST("/root-keywords/sync", cfg.SyncHandler.SyncRoot)
		api.POST("/root-keywords/import", cfg.SyncHandler.ImportRoot)

		// Raw sheet access
		api.GET("/sheets/:id", cfg.SheetHandler.Read)
		api.POST("/sheets/:id", cfg.SheetHandler.Append)
		api.PATCH("/sheets/:id", cfg.SheetHandler.Update)
		api.POST("/sheets/:id/batch-update", cfg.SheetHandler.BatchUpdate)
		api.GET("/sheets/:id/metadata", cfg.SheetHandler.Metadata)

		// Scheduled jobs, also callable by hand
		api.GET("/cron/sync-all", cfg.SyncHandler.CronSyncAll)
		api.GET("/cron/import-all", cfg.SyncHandler.CronImportAll)
	}

	return router
}
