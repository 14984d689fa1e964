package main

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"betatrack/internal/analyze"
	"betatrack/internal/api/twelvedata"
	"betatrack/internal/config"
	"betatrack/internal/database"
	"betatrack/internal/report"
)

func main() {
	// 1) Конфиг и логгер
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	client := twelvedata.NewClient(twelvedata.ClientOptions{
		APIKey:         cfg.TwelveAPIKey,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
	})
	ctx := context.Background()

	// 2) Загружаем дневные бары для актива и индекса
	assetBars, err := client.GetDailyBars(ctx, cfg.AssetSymbol, cfg.StartDate, cfg.EndDate)
	if err != nil {
		log.Fatal().Err(err).Str("symbol", cfg.AssetSymbol).Msg("fetch asset bars failed")
	}
	indexBars, err := client.GetDailyBars(ctx, cfg.IndexSymbol, cfg.StartDate, cfg.EndDate)
	if err != nil {
		log.Fatal().Err(err).Str("symbol", cfg.IndexSymbol).Msg("fetch index bars failed")
	}

	// 3) Считаем регрессии по трём каналам
	analysis, err := analyze.Run(assetBars, indexBars, analyze.Options{
		AssetSymbol:     cfg.AssetSymbol,
		IndexSymbol:     cfg.IndexSymbol,
		ConfidenceLevel: cfg.ConfidenceLevel,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Pipeline failed")
	}

	fmt.Print(report.Format(analysis))

	if lvl <= zerolog.DebugLevel {
		fmt.Println("\nAligned dataset:")
		fmt.Print(report.FormatDataset(analysis.Dataset))
	}

	// 4) Сохраняем результаты, если настроена база
	if cfg.DBHost != "" {
		db, err := database.New(database.ConnectionParams{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
		if err != nil {
			log.Error().Err(err).Msg("Failed to connect to database, results not stored")
			return
		}
		defer db.Close()

		if err := db.SaveAnalysis(analysis); err != nil {
			log.Error().Err(err).Msg("Failed to store results")
		} else {
			log.Info().Msg("Results stored")
		}
	}
}
