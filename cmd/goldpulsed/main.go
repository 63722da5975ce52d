package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"

	"goldpulse/internal/config"
	"goldpulse/internal/llm"
	"goldpulse/internal/prediction"
	"goldpulse/internal/pricefeed"
	"goldpulse/internal/server"
	"goldpulse/internal/telemetry"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	opts := []telemetry.Option{telemetry.WithMaxRecords(cfg.MaxRecords)}
	if cfg.ActivitiesFilePath != "" {
		repo, err := telemetry.NewFileRepository[telemetry.Activity](cfg.ActivitiesFilePath)
		if err != nil {
			log.Printf("failed to init activities repo, running memory-only: %v", err)
		} else {
			opts = append(opts, telemetry.WithActivityRepository(repo))
		}
	}
	if cfg.ReviewsFilePath != "" {
		repo, err := telemetry.NewFileRepository[telemetry.Review](cfg.ReviewsFilePath)
		if err != nil {
			log.Printf("failed to init reviews repo, running memory-only: %v", err)
		} else {
			opts = append(opts, telemetry.WithReviewRepository(repo))
		}
	}
	store := telemetry.New(opts...)

	var client llm.Client
	if cfg.GatewayAPIKey == "" {
		log.Printf("GATEWAY_API_KEY is not configured; serving fallback estimates only")
	} else {
		client = llm.NewOpenAI(cfg.GatewayAPIKey, cfg.GatewayBaseURL, cfg.GatewayModel)
	}
	predictor := prediction.New(client, cfg.PredictTimeout)

	h := &server.Handler{
		Store:     store,
		Stats:     telemetry.NewAggregator(store),
		Predictor: predictor,
	}

	if cfg.FeedEnabled {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		feed := pricefeed.New(store, cfg.FeedStartPrice, rng)
		if err := feed.Start(cfg.FeedIntervalSeconds); err != nil {
			log.Fatalf("failed to start price feed: %v", err)
		}
		defer feed.Stop()
		h.Prices = feed
	}

	r := server.NewRouter(h)
	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("http server exited: %v", err)
	}
}
