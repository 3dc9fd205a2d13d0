package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/m04kA/SMC-TurfBookingService/internal/config"
	"github.com/m04kA/SMC-TurfBookingService/pkg/logger"
)

const defaultMigrationsDir = "migrations"

// migrate applies the SQL files in ./migrations (or $MIGRATIONS_DIR) to the configured database.
//
//	migrate up | down [steps] | version | force <version>
func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = defaultMigrationsDir
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		log.Fatal("Failed to resolve migrations dir %s: %v", dir, err)
	}

	sourceURL := "file://" + filepath.ToSlash(abs)
	m, err := migrate.New(sourceURL, cfg.Database.URL())
	if err != nil {
		log.Fatal("Failed to create migrator: %v", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Warn("Close migration source: %v", srcErr)
		}
		if dbErr != nil {
			log.Warn("Close migration db: %v", dbErr)
		}
	}()

	switch os.Args[1] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("Migrate up failed: %v", err)
		}
		log.Info("Migrations applied from %s", sourceURL)

	case "down":
		steps := 1
		if len(os.Args) > 2 {
			steps, err = strconv.Atoi(os.Args[2])
			if err != nil || steps <= 0 {
				log.Fatal("Invalid down steps %q", os.Args[2])
			}
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("Migrate down failed: %v", err)
		}
		log.Info("Rolled back %d migration(s)", steps)

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			return
		}
		if err != nil {
			log.Fatal("Failed to read version: %v", err)
		}
		fmt.Printf("version: %d dirty: %t\n", version, dirty)

	case "force":
		if len(os.Args) < 3 {
			log.Fatal("force requires a version argument")
		}
		version, err := strconv.Atoi(os.Args[2])
		if err != nil || version < 0 {
			log.Fatal("Invalid version %q", os.Args[2])
		}
		if err := m.Force(version); err != nil {
			log.Fatal("Force version %d failed: %v", version, err)
		}
		log.Info("Forced version to %d", version)

	default:
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down [steps]|version|force <version>>\n", name)
}
