package main

import (
	"fmt"
	"log"
	"net/http"
	"pig-logistics-sim/internal/adapters/repositories"
	"pig-logistics-sim/internal/api"
	"pig-logistics-sim/internal/config"
	"pig-logistics-sim/internal/platform/db"
	"pig-logistics-sim/internal/ports"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires the run repository behind its port and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	params, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	port := config.Get("PORT", "8080")

	repo, closeDB, err := openRepository(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer closeDB()

	router := api.NewRouter(repo, params)

	// Simulations run inside the request, so writes get a long timeout.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openRepository uses SQLite at dbPath, or keeps runs in memory when
// dbPath is ":memory:".
func openRepository(dbPath string) (ports.RunRepository, func(), error) {
	if dbPath == ":memory:" {
		return repositories.NewMemoryRunRepository(), func() {}, nil
	}

	conn, err := db.OpenSqlite(dbPath)
	if err != nil {
		return nil, nil, err
	}

	// Initialize schema on startup for local runs.
	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open repository: %w", err)
	}

	return repositories.NewSqliteRunRepository(conn), func() { conn.Close() }, nil
}
