package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pharmadist/backend/internal/infrastructure/config"
	"github.com/pharmadist/backend/internal/infrastructure/logger"
	"github.com/pharmadist/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
		waitTimeout    time.Duration
	)
	flag.StringVar(&migrationsPath, "path", defaultMigrationsPath, "Path to migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&waitTimeout, "wait", 30*time.Second, "How long to wait for the database to accept connections")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	dsn := cfg.Database.DSN()
	if err := waitForDatabase(dsn, waitTimeout); err != nil {
		log.Fatal("Database not reachable", zap.Error(err))
	}

	runner, err := migration.New("file://"+migrationsPath, dsn, log)
	if err != nil {
		log.Fatal("Failed to initialize migrations", zap.Error(err))
	}
	defer func() {
		_ = runner.Close()
	}()

	switch command {
	case "up":
		err = runner.Up()
	case "down":
		err = runner.Down()
	case "version":
		var version uint
		var dirty bool
		version, dirty, err = runner.Version()
		if err == nil {
			log.Info("schema version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty))
		}
	case "force":
		if len(args) < 2 {
			log.Fatal("force requires a version argument")
		}
		var version int
		version, err = strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version", zap.String("arg", args[1]))
		}
		err = runner.Force(version)
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatal("Migration failed", zap.String("command", command), zap.Error(err))
	}
}

// waitForDatabase pings until the database answers or the timeout lapses
func waitForDatabase(dsn string, timeout time.Duration) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	deadline := time.Now().Add(timeout)
	for {
		err = db.Ping()
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("database did not become ready within %s: %w", timeout, err)
		}
		time.Sleep(time.Second)
	}
}

func printUsage() {
	fmt.Println(`Usage: migrate [flags] <command>

Commands:
  up             Apply all pending migrations
  down           Roll back the most recent migration
  version        Print the current schema version
  force <n>      Set the schema version without running migrations

Flags:
  -path <dir>    Migrations directory (default: migrations)
  -log-level     debug, info, warn, error (default: info)
  -wait <dur>    How long to wait for the database (default: 30s)`)
}
