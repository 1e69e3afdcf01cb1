package main

import (
	"log"
	"net/http"

	"github.com/AdamBeresnev/game-hub/internal/config"
	"github.com/AdamBeresnev/game-hub/internal/content"
	"github.com/AdamBeresnev/game-hub/internal/cosmic"
	"github.com/AdamBeresnev/game-hub/internal/service"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	client := cosmic.NewClient(cfg.APIURL, cfg.BucketSlug, cfg.ReadKey, cosmic.WithTimeout(cfg.Timeout))
	site := service.NewSiteService(content.NewAccessor(client), clockwork.NewRealClock(), cfg.Timeout)

	router := newRouter(site)

	log.Printf("Server starting on %s", cfg.WebAddr)
	if err := http.ListenAndServe(cfg.WebAddr, router); err != nil {
		log.Fatal(err)
	}
}
