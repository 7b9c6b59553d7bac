package main

import (
	"log"

	"github.com/Tejas-Atram/AI-Resume-Builder/internal/bootstrap"
	"github.com/Tejas-Atram/AI-Resume-Builder/internal/shared/config"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	if app.DB != nil {
		defer app.DB.Close()
	}

	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
