// Package catalog loads the material table and machining rates from SQLite.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Starkspan/Final5/internal/db"
	"github.com/Starkspan/Final5/internal/estimate"
	"github.com/Starkspan/Final5/internal/migrations"
	"github.com/Starkspan/Final5/internal/seed"
)

// Open prepares the catalog database at path and loads the catalog from it.
// The returned catalog does not change for the lifetime of the process.
func Open(ctx context.Context, path string, logger *slog.Logger) (estimate.Catalog, error) {
	database, err := db.Open(ctx, path)
	if err != nil {
		return estimate.Catalog{}, err
	}
	defer database.Close()

	if err := migrations.Up(ctx, database); err != nil {
		return estimate.Catalog{}, err
	}

	stats, err := seed.Run(ctx, database, estimate.DefaultCatalog())
	if err != nil {
		return estimate.Catalog{}, err
	}
	if stats.Inserts > 0 {
		logger.Info("seeded catalog defaults", "inserts", stats.Inserts)
	}

	return Load(ctx, database, logger)
}

// Load reads materials and rates, keeping compiled-in defaults for anything
// the database does not carry.
func Load(ctx context.Context, database *sql.DB, logger *slog.Logger) (estimate.Catalog, error) {
	catalog := estimate.DefaultCatalog()

	rows, err := database.QueryContext(ctx, `SELECT kind, density, price_per_kg FROM materials ORDER BY kind`)
	if err != nil {
		return estimate.Catalog{}, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var spec estimate.MaterialSpec
		if err := rows.Scan(&kind, &spec.Density, &spec.PricePerKg); err != nil {
			return estimate.Catalog{}, fmt.Errorf("scan material: %w", err)
		}
		if !slices.Contains(estimate.MaterialKinds, estimate.MaterialKind(kind)) {
			logger.Warn("ignoring unknown material", "kind", kind)
			continue
		}
		catalog.Materials[estimate.MaterialKind(kind)] = spec
	}
	if err := rows.Err(); err != nil {
		return estimate.Catalog{}, fmt.Errorf("iterate materials: %w", err)
	}

	r := &catalog.Rates
	err = database.QueryRowContext(ctx, `
		SELECT machine_hourly_rate, minutes_per_kg, setup_cost, programming_cost, margin_percent
		FROM rate_config
		WHERE id = 1
	`).Scan(&r.MachineHourlyRate, &r.MinutesPerKg, &r.SetupCost, &r.ProgrammingCost, &r.MarginPercent)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return estimate.Catalog{}, fmt.Errorf("query rate_config: %w", err)
	}

	return catalog, nil
}
