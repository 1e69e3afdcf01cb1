package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/AdamBeresnev/game-hub/internal/config"
	"github.com/AdamBeresnev/game-hub/internal/db"
	"github.com/AdamBeresnev/game-hub/internal/devstore"
	"github.com/AdamBeresnev/game-hub/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	database, err := db.Open(cfg.DevStoreDB)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database.DB); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	objects := store.NewObjectStore(database)
	if err := seed(objects, cfg.DevStoreFixtures); err != nil {
		log.Fatal("Failed to seed fixtures: ", err)
	}

	handler := devstore.NewHandler(objects, cfg.BucketSlug, cfg.ReadKey)

	log.Printf("Dev store serving bucket %q on %s", cfg.BucketSlug, cfg.DevStoreAddr)
	if err := http.ListenAndServe(cfg.DevStoreAddr, handler.Routes()); err != nil {
		log.Fatal(err)
	}
}

func seed(objects *store.ObjectStore, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fixtures, err := store.LoadFixtures(f)
	if err != nil {
		return err
	}
	n, err := objects.Seed(context.Background(), fixtures)
	if err != nil {
		return err
	}
	log.Printf("Seeded %d objects from %s", n, path)
	return nil
}
