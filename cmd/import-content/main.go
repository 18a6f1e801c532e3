package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/debemdeboas/oremos-juntos/internal/config"
	"github.com/debemdeboas/oremos-juntos/internal/content"
	"github.com/debemdeboas/oremos-juntos/internal/db"
	"github.com/debemdeboas/oremos-juntos/internal/repository"
)

// main writes a content document, such as one downloaded from the panel's
// export, into the configured content store.
func main() {
	configPath := flag.String("config", "config.yaml", "Path to the configuration file")
	file := flag.String("file", "", "JSON content document to import")
	dryRun := flag.Bool("dry-run", false, "Reconcile and report without writing")
	flag.Parse()

	if *file == "" {
		log.Fatal("The --file flag is required")
	}
	if err := config.LoadConfig(*configPath); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	cfg := config.AppConfig

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Error reading %s: %v", *file, err)
	}

	// Older exports are healed the same way the server heals the stored row.
	doc, err := content.Reconcile(content.Defaults(), raw)
	if err != nil {
		log.Printf("Some sections kept their defaults: %v", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		log.Fatalf("Error encoding content: %v", err)
	}
	if *dryRun {
		log.Printf("Reconciled %d bytes, %d sections visible, nothing written", len(raw), len(doc.Layout()))
		return
	}

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
	if err := store.Upsert(ctx, data); err != nil {
		log.Fatalf("Error writing content: %v", err)
	}
	log.Printf("Imported %s", *file)
}
