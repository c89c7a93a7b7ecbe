package main

import (
	"context"
	"flag"
	"os"
	"time"

	"go.uber.org/zap"

	"grynvault-backend/internal/adapter/repository/mysql"
	"grynvault-backend/internal/config"
	"grynvault-backend/internal/infrastructure/db"
	"grynvault-backend/internal/infrastructure/logger"
)

// Seed the lender_offers collection with demo supply.
func main() {
	file := flag.String("file", "", "JSON file of lender offers (defaults to the built-in set)")
	flag.Parse()

	cfg := config.Load()
	log, err := logger.New(cfg.LogLevel, "grynvault-seed")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	raw := defaultOffers
	if *file != "" {
		if raw, err = os.ReadFile(*file); err != nil {
			log.Fatal("read offers", zap.String("file", *file), zap.Error(err))
		}
	}
	recs, err := parseOffers(raw)
	if err != nil {
		log.Fatal("parse offers", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		log.Fatal("open mysql", zap.Error(err))
	}
	repo := mysql.NewOrderRepository(gdb)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := repo.Migrate(ctx); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	n, err := seed(ctx, repo, recs)
	if err != nil {
		log.Fatal("seed", zap.Error(err))
	}
	if n == 0 {
		log.Info("lender offers already present, nothing to seed")
		return
	}
	log.Info("seeded lender offers", zap.Int("count", n))
}
