// cmd/forecast/main.go
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/opsconsole/backend/internal/cache"
	"github.com/opsconsole/backend/internal/config"
	"github.com/opsconsole/backend/internal/domain"
	"github.com/opsconsole/backend/internal/export"
	"github.com/opsconsole/backend/internal/forecast"
	"github.com/opsconsole/backend/internal/repository/postgres"
	"github.com/opsconsole/backend/internal/service"
	"github.com/opsconsole/backend/internal/storage"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "forecast",
		Usage: "Batch forecast and replenishment tooling",
		Commands: []*cli.Command{
			{
				Name:  "series",
				Usage: "Generate the forecast series and write it as CSV",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.IntFlag{Name: "horizon", Value: forecast.DefaultHorizonMonths, Usage: "Horizon in months"},
					&cli.StringFlag{Name: "group-by", Value: "product", Usage: "Row grouping: product, month or week"},
					&cli.StringFlag{Name: "location", Usage: "Restrict to one location"},
					&cli.StringSliceFlag{Name: "product", Usage: "Restrict to specific product ids (repeatable)"},
					&cli.StringFlag{Name: "out", Usage: "Output file (default stdout)"},
					&cli.BoolFlag{Name: "archive", Usage: "Also archive the snapshot to object storage"},
				},
				Action: runSeries,
			},
			{
				Name:  "timeline",
				Usage: "Project a replenishment suggestion against shipping routes",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.IntFlag{Name: "current-stock", Required: true},
					&cli.Float64Flag{Name: "daily-rate", Required: true},
					&cli.IntFlag{Name: "qty", Required: true, Usage: "Recommended order quantity"},
					&cli.IntFlag{Name: "supplier-lead", Usage: "Supplier lead time in days (0 = default)"},
					&cli.IntFlag{Name: "route-transit", Usage: "Route transit in days (0 = default)"},
					&cli.StringFlag{Name: "route-name", Usage: `Route name, e.g. "Shenzhen to Midwest Hub Ocean"`},
					&cli.StringFlag{Name: "destination", Usage: "Destination location id"},
					&cli.StringFlag{Name: "stockout", Usage: "Projected stockout date (YYYY-MM-DD)"},
				},
				Action: runTimeline,
			},
			{
				Name:  "archives",
				Usage: "List archived forecast snapshots in object storage",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "prefix", Value: "forecast/", Usage: "Key prefix to list under"},
				},
				Action: runArchives,
			},
			{
				Name:  "fetch",
				Usage: "Download an archived forecast snapshot",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "key", Required: true, Usage: "Object key to download"},
					&cli.StringFlag{Name: "out", Required: true, Usage: "Local destination path"},
				},
				Action: runFetch,
			},
			{
				Name:  "recompute-baselines",
				Usage: "Re-derive baseline daily rates from the trailing sales window",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{Name: "location", Required: true, Usage: "Location whose profiles to update"},
				},
				Action: runRecomputeBaselines,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSeries(c *cli.Context) error {
	db, err := postgres.NewDBFromURL(c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	filter := domain.SeriesFilter{
		ProductIDs:    c.StringSlice("product"),
		LocationID:    c.String("location"),
		HorizonMonths: c.Int("horizon"),
		GroupBy:       c.String("group-by"),
	}

	forecastService := service.NewForecastService(
		postgres.NewForecastRepository(db),
		postgres.NewSalesHistoryRepository(db),
		cache.NewNoopSeriesCache(),
		0,
	)

	now := time.Now().UTC()
	rows, err := forecastService.GetSeries(c.Context, filter, now)
	if err != nil {
		return err
	}

	if c.Bool("archive") {
		cfg := config.Load()
		if !cfg.Storage.Enabled {
			return fmt.Errorf("archive requested but storage is not configured")
		}
		store, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			return err
		}
		label := filter.LocationID
		if label == "" {
			label = "all"
		}
		key, err := export.NewArchiver(store).Archive(c.Context, rows, label, now)
		if err != nil {
			return err
		}
		log.Printf("archived snapshot to %s", key)
	}

	out := os.Stdout
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("could not create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return export.WriteCSV(out, rows)
}

func runTimeline(c *cli.Context) error {
	db, err := postgres.NewDBFromURL(c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	suggestion := forecast.ReplenishmentSuggestion{
		CurrentStock:          c.Int("current-stock"),
		DailySalesRate:        c.Float64("daily-rate"),
		RecommendedQty:        c.Int("qty"),
		SupplierLeadTimeDays:  c.Int("supplier-lead"),
		RouteTransitDays:      c.Int("route-transit"),
		RouteName:             c.String("route-name"),
		DestinationLocationID: c.String("destination"),
	}

	if value := c.String("stockout"); value != "" {
		stockout, err := forecast.ParseDay(value)
		if err != nil {
			return err
		}
		suggestion.StockoutDate = &stockout
	}

	replenishmentService := service.NewReplenishmentService(
		postgres.NewRouteRepository(db),
		postgres.NewProductRepository(db),
	)

	result, err := replenishmentService.ProjectTimeline(c.Context, suggestion, time.Now().UTC())
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func newStorageClient() (*storage.MinioClient, error) {
	cfg := config.Load()
	if !cfg.Storage.Enabled {
		return nil, fmt.Errorf("object storage is not configured")
	}
	return storage.NewMinioClient(cfg.Storage)
}

func runArchives(c *cli.Context) error {
	store, err := newStorageClient()
	if err != nil {
		return err
	}

	objects, err := store.ListObjects(c.Context, c.String("prefix"))
	if err != nil {
		return err
	}

	for _, obj := range objects {
		fmt.Printf("%s\t%d\n", obj.Key, obj.Size)
	}
	return nil
}

func runFetch(c *cli.Context) error {
	store, err := newStorageClient()
	if err != nil {
		return err
	}

	if err := store.DownloadObject(c.Context, c.String("key"), c.String("out")); err != nil {
		return err
	}

	log.Printf("downloaded %s to %s", c.String("key"), c.String("out"))
	return nil
}

func runRecomputeBaselines(c *cli.Context) error {
	db, err := postgres.NewDBFromURL(c.String("db-url"))
	if err != nil {
		return err
	}
	defer db.Close()

	forecastService := service.NewForecastService(
		postgres.NewForecastRepository(db),
		postgres.NewSalesHistoryRepository(db),
		cache.NewNoopSeriesCache(),
		0,
	)

	return forecastService.RecomputeBaselines(c.Context, c.String("location"), time.Now().UTC())
}
