// Command seed loads a JSON file into the store through the bulk upsert
// path used by POST /api/import/:resource.
//
// Usage:
//
//	seed -resource categories -file seed/categories.json
//	seed -resource articles -file seed/articles.json -key slug
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/journalist-portfolio-api/internal/config"
	"github.com/journalist-portfolio-api/internal/database"
	"github.com/journalist-portfolio-api/internal/repository"
	"github.com/journalist-portfolio-api/internal/service"
	"github.com/journalist-portfolio-api/pkg/logger"
)

func main() {
	resource := flag.String("resource", "", "resource to load: articles, categories, tags or profile")
	file := flag.String("file", "", "path to a JSON array of records")
	key := flag.String("key", "", "natural key to merge on (defaults to slug, or id for profile)")
	flag.Parse()

	if *resource == "" || *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Failed to open file")
	}
	defer f.Close()

	services := service.NewServices(repository.New(db), cfg, log)
	result, err := services.Import.Upsert(context.Background(), *resource, *key, f)
	if err != nil {
		log.Error().Err(err).Str("file", *file).Msg("Load failed, nothing applied")
		f.Close()
		db.Close()
		os.Exit(1)
	}

	log.Info().
		Str("resource", result.Resource).
		Str("key", result.Key).
		Int("applied", result.Applied).
		Msg("Load complete")
}
