package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// AI gateway settings
	GatewayAPIKey  string `env:"GATEWAY_API_KEY"`
	GatewayBaseURL string `env:"GATEWAY_BASE_URL" envDefault:"https://ai.gateway.lovable.dev/v1"`
	GatewayModel   string `env:"GATEWAY_MODEL" envDefault:"google/gemini-2.5-flash"`

	PredictTimeout time.Duration `env:"PREDICT_TIMEOUT" envDefault:"30s"`

	// Storage
	ActivitiesFilePath string `env:"ACTIVITIES_FILE_PATH" envDefault:"data/activities.json"`
	ReviewsFilePath    string `env:"REVIEWS_FILE_PATH" envDefault:"data/reviews.json"`
	MaxRecords         int    `env:"MAX_RECORDS" envDefault:"1000"`

	// HTTP
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// Simulated spot price feed
	FeedEnabled         bool    `env:"FEED_ENABLED" envDefault:"true"`
	FeedIntervalSeconds int     `env:"FEED_INTERVAL_SECONDS" envDefault:"30"`
	FeedStartPrice      float64 `env:"FEED_START_PRICE" envDefault:"285000"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
