package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"akiya-analysis-service/internal/adapters/primary/http/handlers"
	"akiya-analysis-service/internal/adapters/primary/http/middleware"
	"akiya-analysis-service/internal/adapters/primary/http/ui"
	"akiya-analysis-service/internal/adapters/secondary/catalog"
	"akiya-analysis-service/internal/adapters/secondary/postgres"
	"akiya-analysis-service/internal/config"
	output "akiya-analysis-service/internal/core/ports/output"
	"akiya-analysis-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagAddress  string
	flagPort     int
	flagCatalog  string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:           "akiya-analysis-service",
	Short:         "Market feasibility analysis for vacant-house reuse businesses",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// Flags win over environment
		if cmd.Flags().Changed("server.address") {
			cfg.Server.Host = flagAddress
		}
		if cmd.Flags().Changed("server.port") {
			cfg.Server.Port = flagPort
		}
		if cmd.Flags().Changed("catalog") {
			cfg.Catalog.File = flagCatalog
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Logger.Level = flagLogLevel
		}

		return run(cfg)
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagAddress, "server.address", "0.0.0.0", "listen address")
	rootCmd.Flags().IntVar(&flagPort, "server.port", 8501, "listen port")
	rootCmd.Flags().StringVar(&flagCatalog, "catalog", "", "catalog YAML replacing the built-in areas and businesses")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "log level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config) error {
	initLogger(cfg)

	// Secondary Adapters (Output Ports - Repositories)
	catalogRepo, err := catalog.NewRepository(cfg.Catalog.File)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	log.Info("catalog loaded")

	// Analysis history store (Optional - based on config)
	var pool *pgxpool.Pool
	var runRepo output.AnalysisRunRepository
	if cfg.Database.Enabled {
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("parse db config: %w", err)
		}
		poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
		poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
		poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

		pool, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
		if err != nil {
			return fmt.Errorf("create db pool: %w", err)
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			return fmt.Errorf("ping db: %w", err)
		}
		if err := postgres.EnsureSchema(context.Background(), pool); err != nil {
			return fmt.Errorf("ensure db schema: %w", err)
		}
		runRepo = postgres.NewAnalysisRunRepository(pool)
		log.Info("database connection established, analysis history enabled")
	} else {
		log.Info("analysis history disabled")
	}

	// Core Services (Application Layer)
	catalogSvc := services.NewCatalogService(catalogRepo)
	analysisSvc := services.NewAnalysisService(catalogRepo, runRepo)

	// Primary Adapters (HTTP Handlers + HTML UI)
	h := handlers.New(catalogSvc, analysisSvc)
	page := ui.New(catalogSvc, analysisSvc)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), middleware.Metrics(), gin.Recovery())

	api := router.Group("/api/v1/market-analysis")
	h.RegisterRoutes(api)
	page.RegisterRoutes(router)

	// Health check, with DB ping when history is enabled
	router.GET("/healthz", func(c *gin.Context) {
		if pool != nil {
			if err := pool.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
