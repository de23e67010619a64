// Package main implements the seed tool: it bulk-loads the ingredient catalog
// from a JSON file into the database.
//
// The file is an array of objects with "name" and "measurement_unit" keys:
//
//	[{"name": "salt", "measurement_unit": "g"}, ...]
//
// Usage:
//
//	seed -file data/ingredients.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/dezz1er/foodgram-project-react/internal/config"
	"github.com/dezz1er/foodgram-project-react/internal/domain"
	"github.com/dezz1er/foodgram-project-react/internal/repo"
	"github.com/dezz1er/foodgram-project-react/internal/service"
)

type ingredientRecord struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func main() {
	file := flag.String("file", "data/ingredients.json", "path to the ingredients JSON file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		slog.Error("failed to read ingredients file", "file", *file, "error", err)
		os.Exit(1)
	}

	var records []ingredientRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		slog.Error("failed to parse ingredients file", "file", *file, "error", err)
		os.Exit(1)
	}

	ings := make([]domain.Ingredient, len(records))
	for i, rec := range records {
		ings[i] = domain.Ingredient{Name: rec.Name, MeasurementUnit: rec.MeasurementUnit}
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	svc := service.NewIngredientService(repo.NewIngredientRepo(pool))
	if err := svc.Import(context.Background(), ings); err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}

	slog.Info("ingredients imported", "count", len(ings))
}
