package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"pig-logistics-sim/internal/adapters/repositories"
	"pig-logistics-sim/internal/config"
	"pig-logistics-sim/internal/platform/db"
	"strings"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	importPath := config.Get("IMPORT_PATH", "")
	if err := initAndImport(context.Background(), db, importPath); err != nil {
		log.Fatal(err)
	}
}

func initAndImport(ctx context.Context, db *sql.DB, importPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitPostgresSchema(db); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if importPath == "" {
		return nil
	}

	log.Printf("Importing run from %s...", importPath)
	id, err := repositories.ImportRunFromJSON(ctx, repositories.NewPostgresRunRepository(db), importPath)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	log.Printf("Import complete. run_id=%s", id)

	return nil
}
