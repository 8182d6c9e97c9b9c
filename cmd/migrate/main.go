package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-VenueBookingService/internal/config"
	"github.com/m04kA/SMC-VenueBookingService/migrations"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("usage: migrate [-config config.toml] <up|down|version>")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	m, err := migrations.New(cfg.Database.URL())
	if err != nil {
		log.Fatal("Failed to create migrator: %v", err)
	}
	defer func() { _, _ = m.Close() }()

	switch args[0] {
	case "up":
		err = m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("No pending migrations")
			return
		}
		if err != nil {
			log.Fatal("Migration up failed: %v", err)
		}
		log.Info("Migrations applied successfully")

	case "down":
		err = m.Steps(-1)
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("No migrations to roll back")
			return
		}
		if err != nil {
			log.Fatal("Migration down failed: %v", err)
		}
		log.Info("Last migration rolled back")

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info("No migrations applied yet")
			return
		}
		if err != nil {
			log.Fatal("Failed to get version: %v", err)
		}
		log.Info("Current migration version=%d, dirty=%t", version, dirty)

	default:
		log.Fatal("Unknown command %q", args[0])
	}
}
