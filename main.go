package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"sqlintent/catalog"
	"sqlintent/config"
	"sqlintent/db"
	_ "sqlintent/docs" // Swagger docs
	"sqlintent/handlers"
	"sqlintent/mcpserver"
	"sqlintent/service"
	"sqlintent/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	cfg := config.GetConfig()

	// In MCP mode stdout carries the JSON-RPC transport, so logs go to stderr.
	logOut := os.Stdout
	if cfg.MCPMode == "stdio" {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)

	// Load the template catalog. A malformed catalog is startup-fatal.
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load template catalog: %v", err)
	}
	logger.Info("template catalog loaded", "path", cfg.CatalogPath, "templates", cat.Len())

	// Load environment profiles.
	profiles, err := config.LoadProfiles(cfg.EnvironmentsPath)
	if err != nil {
		log.Fatalf("Failed to load environment profiles: %v", err)
	}
	logger.Info("environment profiles loaded", "environments", profiles.Names())

	// Initialize query history database
	database, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize session context store
	sessions := session.New(cfg.SessionTTL)

	// Initialize execution engine
	executor := service.NewExecutor(profiles, cat, cfg.QueryTimeout, logger)
	defer executor.Close()

	if cfg.MCPMode == "stdio" {
		pipeline := service.NewPipeline(cat, executor, sessions, database, cfg.DefaultEnv, logger)
		if err := mcpserver.New(pipeline, logger).Run(context.Background()); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}
		return
	}

	// Initialize handlers
	h := handlers.New(cat, executor, sessions, database, cfg.DefaultEnv, logger)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(handlers.RequestIDMiddleware())
	r.Use(handlers.RecoveryMiddleware(logger))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-ID")
	r.Use(cors.New(corsCfg))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Routes
	r.GET("/health", h.HealthHandler)
	r.POST("/api/query", h.QueryHandler)
	r.GET("/api/templates", h.ListTemplatesHandler)
	r.GET("/api/sessions", h.ListSessionsHandler)
	r.GET("/api/sessions/:id/context", h.GetSessionContextHandler)
	r.GET("/api/sessions/:id/history", h.GetSessionHistoryHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
