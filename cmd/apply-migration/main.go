package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"

	"relief-dispatch/common/database"
	"relief-dispatch/common/logger"
	commonredis "relief-dispatch/common/redis"
	"relief-dispatch/internal/app"
	"relief-dispatch/internal/config"
	"relief-dispatch/internal/repository"

	"go.uber.org/zap"
)

func main() {
	seed := flag.Bool("seed", false, "load the bundled mock beneficiaries after migrating")
	flag.Parse()

	cfg := config.Load()

	zl, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "apply-migration")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(context.Background(), cfg, zl, *seed); err != nil {
		zl.Fatal("Migration failed", zap.Error(err))
	}
	fmt.Println("Migration completed successfully")
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger, seed bool) error {
	db, err := database.NewPostgresDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("cannot connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			zl.Warn("Failed to close database", zap.Error(err))
		}
	}()

	fmt.Printf("Connected to database: %s\n\n", cfg.Database.Database)

	if err := repository.Migrate(ctx, db, zl); err != nil {
		return err
	}
	fmt.Printf("Applied %d schema statements\n", len(repository.SchemaStatements()))

	if seed {
		return seedBeneficiaries(ctx, cfg, db, zl)
	}
	return nil
}

func seedBeneficiaries(ctx context.Context, cfg *config.Config, db *sql.DB, zl *zap.Logger) error {
	beneficiaries, err := repository.SeedBeneficiaries()
	if err != nil {
		return fmt.Errorf("failed to load seed beneficiaries: %w", err)
	}
	repo := repository.NewPostgresBeneficiariesRepo(db, zl)
	if err := repo.Insert(ctx, beneficiaries); err != nil {
		return fmt.Errorf("failed to seed beneficiaries: %w", err)
	}
	fmt.Printf("Seeded %d beneficiaries\n", len(beneficiaries))

	if !cfg.RedisEnabled {
		return nil
	}
	// Counts cached before the seed are stale now.
	client, err := commonredis.Connect(ctx, &cfg.Redis)
	if err != nil {
		zl.Warn("Redis unreachable, cached beneficiary counts left to expire", zap.Error(err))
		return nil
	}
	defer func() { _ = commonredis.Close(client) }()

	n, err := app.InvalidateCounts(ctx, app.NewCountCache(client, repo, cfg, zl), beneficiaries)
	if err != nil {
		return err
	}
	fmt.Printf("Invalidated cached counts for %d areas\n", n)
	return nil
}
