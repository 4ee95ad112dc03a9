package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/salonfin/backend/internal/infrastructure/config"
	"github.com/salonfin/backend/internal/infrastructure/logger"
	"github.com/salonfin/backend/internal/infrastructure/migration"
	"github.com/salonfin/backend/migrations"
	"go.uber.org/zap"
)

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "", "Read migrations from this directory instead of the embedded set")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log := logger.New(logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	defer func() { _ = log.Sync() }()

	// create and list only touch files
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Usage: migrate create <name>")
		}
		dir := migrationsPath
		if dir == "" {
			dir = "migrations"
		}
		f, err := migration.Create(dir, args[1])
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created",
			zap.Int("version", f.Version),
			zap.String("up", f.UpPath),
			zap.String("down", f.DownPath))
		return
	case "list":
		files, err := migration.List(source(migrationsPath))
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		for _, f := range files {
			fmt.Printf("%06d  %s\n", f.Version, f.Name)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to connect to database",
			zap.String("host", cfg.Database.Host),
			zap.String("dbname", cfg.Database.DBName),
			zap.Error(err))
	}

	m, err := migration.New(db, source(migrationsPath), log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer func() { _ = m.Close() }()

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "step":
		var n int
		if n, err = intArg(args, "step"); err == nil {
			err = m.Steps(n)
		}
	case "force":
		var v int
		if v, err = intArg(args, "force"); err == nil {
			err = m.Force(v)
		}
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil {
			log.Fatal("Failed to read version", zap.Error(verr))
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal("Migration command failed", zap.String("command", command), zap.Error(err))
	}
}

func source(path string) fs.FS {
	if path == "" {
		return migrations.FS
	}
	return os.DirFS(path)
}

func intArg(args []string, command string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("usage: migrate %s <n>", command)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", args[1], err)
	}
	return n, nil
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Salon Finance Database Migration Tool

Usage:
  migrate [flags] <command> [args]

Commands:
  up             Apply all pending migrations
  down           Roll back all migrations
  step <n>       Apply n migrations (negative rolls back)
  force <v>      Mark version v as applied, clearing a dirty state
  version        Print the current version
  create <name>  Create a new up/down pair in -path (default ./migrations)
  list           List known migrations

Flags:
`)
	flag.PrintDefaults()
}
