package main

import (
	"context"
	"log" // Use standard log only for initial fatal errors before logger is set up

	"deriverse-dashboard/config"
	"deriverse-dashboard/internal/adapters/logger"
	"deriverse-dashboard/internal/adapters/sqlite"
	"deriverse-dashboard/internal/app"
	"deriverse-dashboard/internal/mockdata"
	"deriverse-dashboard/internal/server"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger, err := logger.NewZapLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()
	appLogger.Info(context.Background(), "logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Annotation Store (Database Adapter)
	notes, err := sqlite.NewAnnotationStore(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize annotation store")
		log.Fatalf("FATAL: Failed to initialize annotation store: %v", err)
	}
	defer func() {
		if err := notes.Close(); err != nil {
			appLogger.Error(context.Background(), err, "error closing annotation store")
		}
	}()

	// 4. Synthesize the session dataset (runs once per process)
	dataset := mockdata.Synthesize(mockdata.Params{
		Year:        cfg.Year,
		MonthIndex:  cfg.MonthIndex,
		TotalTrades: cfg.TotalTrades,
		Seed:        cfg.Seed,
		OpenPolicy: mockdata.OpenStatusPolicy{
			MinOpen: cfg.MinOpenTrades,
			Share:   cfg.OpenTradeShare,
		},
	})
	dataset.StartingEquity = cfg.StartingEquity
	appLogger.Info(context.Background(), "dataset synthesized", map[string]interface{}{
		"trades":    len(dataset.Trades),
		"orders":    len(dataset.Orders),
		"transfers": len(dataset.Transfers),
		"seed":      cfg.Seed,
	})

	// 5. Initialize Service and Server
	service, err := app.NewDashboardService(appLogger, dataset, notes)
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize dashboard service")
		log.Fatalf("FATAL: Failed to initialize dashboard service: %v", err)
	}

	srv := server.New(service, notes, appLogger)
	if err := srv.Run(cfg.ListenAddr); err != nil {
		appLogger.Error(context.Background(), err, "dashboard server exited with error")
		log.Fatalf("FATAL: Dashboard server exited: %v", err)
	}
}
