package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"pig-logistics-sim/internal/adapters/export"
	"pig-logistics-sim/internal/adapters/repositories"
	"pig-logistics-sim/internal/app"
	"pig-logistics-sim/internal/config"
	"pig-logistics-sim/internal/platform/db"
	"pig-logistics-sim/internal/platform/metrics"
	"pig-logistics-sim/internal/services"
	"strings"

	"github.com/joho/godotenv"
)

// main runs one simulation from the environment/YAML configuration, prints
// the dashboard figures and writes the export document.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	params, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	metrics.Register()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := &app.Runner{}
	if dbPath := config.Get("DB_PATH", ""); dbPath != "" {
		conn, err := db.OpenSqlite(dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		if err := repositories.InitSchema(conn); err != nil {
			log.Fatal(err)
		}
		runner.Repo = repositories.NewSqliteRunRepository(conn)
	}

	out, err := runner.Run(ctx, params)
	if err != nil {
		log.Fatal(err)
	}

	printDashboard(out.Summary)

	exportPath := config.Get("SIM_EXPORT_PATH", "simulation_export.json")
	if err := export.WriteFile(exportPath, out.Document); err != nil {
		log.Fatal(err)
	}
	log.Printf("run_id=%s export=%s", out.Result.RunID, exportPath)
}

func printDashboard(s services.Summary) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Days simulated:          %d (fleet of %d trucks)\n", s.Days, s.FleetSize)
	fmt.Printf("Routes:                  %d\n", s.Routes)
	fmt.Printf("Pigs delivered:          %d (%.0f kg)\n", s.TotalPigs, s.TotalWeightKg)
	fmt.Printf("Revenue (net):           %12.2f\n", s.Revenue)
	fmt.Printf("Weight penalties:        %12.2f\n", s.Penalties)
	fmt.Printf("Variable transport cost: %12.2f\n", s.VariableTransport)
	fmt.Printf("Fixed transport cost:    %12.2f\n", s.FixedTransport)
	fmt.Printf("Feed cost:               %12.2f\n", s.FeedCost)
	fmt.Printf("Net profit:              %12.2f\n", s.NetProfit)
	fmt.Println(strings.Repeat("-", 60))
	for _, d := range s.PigsPerDay {
		label := ""
		if d.RestDay {
			label = " (rest)"
		}
		fmt.Printf("day %2d: %5d pigs%s\n", d.Day, d.Pigs, label)
	}
}
