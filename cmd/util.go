package cmd

import (
	"commodityforecast/api"
	"commodityforecast/internal/chart"
	"commodityforecast/internal/domain"
	"commodityforecast/internal/logger"
	"commodityforecast/internal/metrics"
	"commodityforecast/internal/repository"
	l1_service "commodityforecast/internal/service/l1"
	l2_service "commodityforecast/internal/service/l2"
	l3_service "commodityforecast/internal/service/l3"
	"commodityforecast/internal/util"
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func CloseDependencies(handler *api.ApiHandler) {
	if handler.Db == nil {
		return
	}
	if err := handler.Db.Close(); err != nil {
		logger.New().Errorf("failed to close db: %v", err)
	}
}

func loadRecords(ctx context.Context, cfg util.DatasetConfig) ([]domain.HistoricalRecord, *sql.DB, error) {
	switch strings.ToLower(cfg.Source) {
	case "", "csv":
		records, err := repository.LoadHistoricalRecordsFromCsv(cfg.CsvPath)
		if err != nil {
			return nil, nil, err
		}
		return records, nil, nil
	case "postgres":
		dbConn, err := sql.Open("postgres", cfg.Db.ToConnectionStr())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to db: %w", err)
		}
		records, err := repository.LoadHistoricalRecordsFromDb(ctx, dbConn)
		if err != nil {
			dbConn.Close()
			return nil, nil, err
		}
		return records, dbConn, nil
	}
	return nil, nil, fmt.Errorf("unknown dataset source %q, expected csv or postgres", cfg.Source)
}

// InitializeDependencies loads config and the dataset, then builds
// every service on top of the one read-only store
func InitializeDependencies(configPath string) (*api.ApiHandler, error) {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	cfg, err := util.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	records, dbConn, err := loadRecords(ctx, cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to load historical records: %w", err)
	}

	historicalRecordRepository, err := repository.NewHistoricalRecordRepository(records)
	if err != nil {
		return nil, err
	}
	log.Infow(
		"loaded historical records",
		"source", cfg.Dataset.Source,
		"rows", len(records),
		"commodities", len(historicalRecordRepository.ListCommodities()),
		"version", historicalRecordRepository.Version(),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	modelService, err := l1_service.NewModelService(l1_service.ModelServiceConfig{
		NumTrees:     cfg.Model.NumTrees,
		Seed:         cfg.Model.Seed,
		TestFraction: cfg.Model.TestFraction,
		MaxDepth:     cfg.Model.MaxDepth,
		CacheSize:    cfg.Model.CacheSize,
	}, m)
	if err != nil {
		return nil, err
	}
	forecastService := l2_service.NewForecastService(
		historicalRecordRepository,
		modelService,
		l2_service.ForecastServiceConfig{MaxPeriodDays: cfg.Forecast.MaxPeriodDays},
	)
	volumeService := l3_service.NewVolumeService(
		historicalRecordRepository,
		forecastService,
		m,
		cfg.Forecast.MaxPeriodDays,
	)

	apiHandler := &api.ApiHandler{
		Db:                         dbConn,
		HistoricalRecordRepository: historicalRecordRepository,
		ForecastService:            forecastService,
		VolumeService:              volumeService,
		ChartRenderer:              chart.NewRenderer(),
		Metrics:                    m,
		Gatherer:                   registry,
	}

	return apiHandler, nil
}

// Port returns the configured http port
func Port(configPath string) (int, error) {
	cfg, err := util.LoadConfig(configPath)
	if err != nil {
		return 0, err
	}
	return cfg.Port, nil
}
