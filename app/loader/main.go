package main

import (
	"flag"

	"github.com/joho/godotenv"

	"github.com/wearly/supportbot/config"
	"github.com/wearly/supportbot/internal/ingest"
	"github.com/wearly/supportbot/internal/logger"
)

func main() {
	_ = godotenv.Load()
	log := logger.New()

	dir := flag.String("dir", "data", "directory containing the catalog csv exports")
	flag.Parse()

	db, err := config.NewPostgres()
	if err != nil {
		log.WithError(err).Fatal("postgres init failed")
	}
	if err := config.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	if err := ingest.NewLoader(db, log).Load(*dir); err != nil {
		log.WithError(err).Fatal("catalog load failed")
	}
	log.Info("catalog load complete")
}
