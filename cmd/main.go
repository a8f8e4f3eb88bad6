package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/virtualsim/relay-backend/config"
	"github.com/virtualsim/relay-backend/handlers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Error creating logger:", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg := config.LoadConfig()
	relay := handlers.NewRelay(handlers.DefaultSettings(), sugar)
	defer relay.Close()

	router := handlers.NewRouter(relay, cfg)

	sugar.Infow("relay listening", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		sugar.Fatalw("server error", "error", err)
	}
}
