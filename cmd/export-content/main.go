package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/debemdeboas/oremos-juntos/internal/cms"
	"github.com/debemdeboas/oremos-juntos/internal/config"
	"github.com/debemdeboas/oremos-juntos/internal/db"
	"github.com/debemdeboas/oremos-juntos/internal/repository"
)

// main prints the content the landing page would render, reconciled with the
// defaults, as indented JSON.
func main() {
	configPath := flag.String("config", "config.yaml", "Path to the configuration file")
	out := flag.String("out", "-", "Output file, - for stdout")
	flag.Parse()

	if err := config.LoadConfig(*configPath); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	cfg := config.AppConfig

	ctx := context.Background()
	dsn := cfg.Store.SQLitePath
	if cfg.Store.Driver == "postgres" {
		dsn = cfg.Secrets.DatabaseURL
	}
	database, err := db.Open(cfg.Store.Driver, dsn)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	if err := database.InitDb(ctx); err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer database.Close()

	store, err := repository.NewContentStore(database, cfg.Store.ContentFile, cfg.Store.Compression)
	if err != nil {
		log.Fatalf("Error opening content store: %v", err)
	}

	doc, err := cms.NewLoader(store).Fetch(ctx)
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Fatalf("Error encoding content: %v", err)
	}
	data = append(data, '\n')

	if *out == "-" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		log.Fatalf("Error writing %s: %v", *out, err)
	}
	log.Printf("Exported content to %s", *out)
}
