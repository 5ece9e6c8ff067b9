package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Starkspan/Final5/internal/estimate"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run inserts the catalog entries that are missing. Existing rows are never
// changed, so edited prices survive restarts.
func Run(ctx context.Context, db *sql.DB, catalog estimate.Catalog) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	for _, kind := range estimate.MaterialKinds {
		if err := ensureMaterial(ctx, tx, kind, catalog.Material(kind), &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}
	if err := ensureRateConfig(ctx, tx, catalog, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureMaterial(ctx context.Context, tx *sql.Tx, kind estimate.MaterialKind, spec estimate.MaterialSpec, stats *Stats) error {
	result, err := tx.ExecContext(ctx, `
		INSERT INTO materials (kind, density, price_per_kg)
		VALUES (?, ?, ?)
		ON CONFLICT(kind) DO NOTHING
	`, string(kind), spec.Density, spec.PricePerKg)
	if err != nil {
		return fmt.Errorf("insert material %s: %w", kind, err)
	}
	return countInserted(result, stats)
}

func ensureRateConfig(ctx context.Context, tx *sql.Tx, catalog estimate.Catalog, stats *Stats) error {
	rates := catalog.Rates
	result, err := tx.ExecContext(ctx, `
		INSERT INTO rate_config (
			id,
			machine_hourly_rate,
			minutes_per_kg,
			setup_cost,
			programming_cost,
			margin_percent
		)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, rates.MachineHourlyRate, rates.MinutesPerKg, rates.SetupCost, rates.ProgrammingCost, rates.MarginPercent)
	if err != nil {
		return fmt.Errorf("insert rate config singleton: %w", err)
	}
	return countInserted(result, stats)
}

func countInserted(result sql.Result, stats *Stats) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	stats.Inserts += int(n)
	return nil
}
