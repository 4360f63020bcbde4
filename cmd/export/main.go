// Command export synthesizes the configured dataset and writes the scoped
// trade rows to a CSV file, applying any stored note overrides.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"deriverse-dashboard/config"
	"deriverse-dashboard/internal/adapters/logger"
	"deriverse-dashboard/internal/adapters/sqlite"
	"deriverse-dashboard/internal/app"
	"deriverse-dashboard/internal/mockdata"
	"deriverse-dashboard/internal/scope"
)

func main() {
	out := flag.String("out", "deriverse-trades.csv", "output CSV path")
	symbol := flag.String("symbol", scope.SymbolAll, "symbol filter, e.g. 'BTC / USDT'")
	start := flag.String("start", "", "start date (YYYY-MM-DD)")
	end := flag.String("end", "", "end date (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	appLogger, err := logger.NewZapLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	notes, err := sqlite.NewAnnotationStore(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to open annotation store: %v", err)
	}
	defer notes.Close()

	dataset := mockdata.Synthesize(mockdata.Params{
		Year:        cfg.Year,
		MonthIndex:  cfg.MonthIndex,
		TotalTrades: cfg.TotalTrades,
		Seed:        cfg.Seed,
	})
	dataset.StartingEquity = cfg.StartingEquity

	service, err := app.NewDashboardService(appLogger, dataset, notes)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize dashboard service: %v", err)
	}

	file, err := os.Create(*out)
	if err != nil {
		log.Fatalf("FATAL: Failed to create output file: %v", err)
	}
	defer file.Close()

	req := app.SnapshotRequest{Symbol: *symbol, StartInput: *start, EndInput: *end}
	if err := service.ExportTradesCSV(context.Background(), file, req); err != nil {
		log.Fatalf("FATAL: Export failed: %v", err)
	}
	appLogger.Info(context.Background(), "export complete", map[string]interface{}{"path": *out})
}
