package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/config"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/infrastructure/database"
	"github.com/fpcgarcias/site-ticketwise-sub000/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]

	dbCfg, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(logger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	mg, err := database.NewMigrator(dbCfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize migrations", zap.Error(err))
	}
	defer func() {
		if err := mg.Close(); err != nil {
			zapLogger.Warn("Failed to close migration session", zap.Error(err))
		}
	}()

	switch command {
	case "up":
		if err := mg.Up(); err != nil {
			zapLogger.Fatal("Migration failed", zap.Error(err))
		}

	case "down":
		if err := mg.Down(); err != nil {
			zapLogger.Fatal("Rollback failed", zap.Error(err))
		}

	case "goto":
		version := versionArg(zapLogger)
		if err := mg.Goto(uint(version)); err != nil {
			zapLogger.Fatal("Migration failed", zap.Error(err))
		}
		zapLogger.Info("Migrated to version", zap.Int("version", version))

	case "force":
		version := versionArg(zapLogger)
		if err := mg.Force(version); err != nil {
			zapLogger.Fatal("Force failed", zap.Error(err))
		}
		zapLogger.Info("Forced version", zap.Int("version", version))

	case "version", "status":
		version, dirty, ok, err := mg.Version()
		if err != nil {
			zapLogger.Fatal("Failed to read version", zap.Error(err))
		}
		if !ok {
			zapLogger.Info("No migrations have been applied")
			return
		}
		zapLogger.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))

	default:
		printUsage()
		os.Exit(1)
	}
}

func versionArg(l *zap.Logger) int {
	if len(os.Args) < 3 {
		l.Fatal("Missing version argument")
	}
	version, err := strconv.Atoi(os.Args[2])
	if err != nil || version < 0 {
		l.Fatal("Invalid version", zap.String("value", os.Args[2]))
	}
	return version
}

func printUsage() {
	fmt.Println("Usage: migrate <command>")
	fmt.Println("Commands:")
	fmt.Println("  up        - apply all pending migrations")
	fmt.Println("  down      - roll back the last migration")
	fmt.Println("  goto N    - migrate to version N")
	fmt.Println("  force N   - set version N without running migrations")
	fmt.Println("  version   - print the current version")
}
