package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"costmanager/cache"
	"costmanager/config"
	"costmanager/database"
	"costmanager/handlers"
	"costmanager/router"
	"costmanager/services"
	"costmanager/store"
	"costmanager/utils"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.LoadConfig()
	ctx := context.Background()

	client, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer client.Disconnect(ctx)
	log.Info().Str("database", cfg.Database).Msg("connected to MongoDB")

	// Caching is optional: without Redis every read goes to the store.
	if err := cache.InitRedis(cache.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, caching disabled")
	}

	h := &handlers.Handler{
		Costs:        store.NewMongoCostStore(client, cfg.Database),
		Products:     store.NewMongoProductStore(client, cfg.Database),
		Users:        store.NewMongoUserStore(client, cfg.Database),
		TokenSecret:  cfg.TokenSecret,
		ResponseHdlr: handlers.NewResponseHandler(),
		ErrorHdlr:    utils.NewErrorHandler(),
	}

	if cfg.GoogleProjectID != "" && cfg.BigQueryTable != "" {
		warehouse, err := services.NewBigQueryService(ctx, cfg.GoogleProjectID, cfg.GoogleCredentials, cfg.BigQueryLocation, cfg.BigQueryTable)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create BigQuery client")
		}
		defer warehouse.Close()
		h.Warehouse = warehouse
	} else {
		log.Warn().Msg("bigquery not configured, /bigquery-data disabled")
	}

	if cfg.CloudinaryURL != "" {
		uploader, err := services.NewCloudinaryUploader(cfg.CloudinaryURL, cfg.CloudinaryFolder)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Cloudinary client")
		}
		h.Uploader = uploader
	} else {
		log.Warn().Msg("cloudinary not configured, /upload disabled")
	}

	r := router.SetupRoutes(h)

	log.Info().Str("addr", cfg.Port).Msg("server listening")
	if err := http.ListenAndServe(cfg.Port, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
