// Package postgres bulk-loads normalized HURDAT2 records into a
// PostGIS-enabled database. Schema, keys, and spatial indexes are managed
// externally; the loader only executes inserts against the existing tables.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/good-kiwi/hurdat2-etl/internal/domain"
	"github.com/good-kiwi/hurdat2-etl/internal/pipeline"
)

const (
	insertStormSQL = `
		INSERT INTO historical_storms (event_id, basin, name, start_time, path)
		VALUES ($1, $2, $3, $4, ST_GeomFromText($5, 4326))`

	insertObservationSQL = `
		INSERT INTO storm_observations (
			event_id, point_time, identifier, status,
			latitude, longitude, location,
			max_wind_knots, min_pressure_mb,
			ne_34kt_radii_max_nm, se_34kt_radii_max_nm, sw_34kt_radii_max_nm, nw_34kt_radii_max_nm,
			ne_50kt_radii_max_nm, se_50kt_radii_max_nm, sw_50kt_radii_max_nm, nw_50kt_radii_max_nm,
			ne_64kt_radii_max_nm, se_64kt_radii_max_nm, sw_64kt_radii_max_nm, nw_64kt_radii_max_nm
		) VALUES (
			$1, $2, $3, $4, $5, $6, ST_GeomFromText($7, 4326),
			$8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21
		)`

	insertIdentifierSQL = `
		INSERT INTO observation_identifiers (code_id, description)
		VALUES ($1, $2) ON CONFLICT (code_id) DO NOTHING`

	insertStatusSQL = `
		INSERT INTO observation_statuses (code_id, description)
		VALUES ($1, $2) ON CONFLICT (code_id) DO NOTHING`
)

// Loader implements pipeline.Loader against Postgres/PostGIS.
type Loader struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// Connect opens and pings a Postgres connection.
func Connect(dsn string) (*sqlx.DB, error) {
	return sqlx.Connect("postgres", dsn)
}

// New creates a Loader on an open connection.
func New(db *sqlx.DB, logger *slog.Logger) *Loader {
	return &Loader{db: db, logger: logger}
}

// LoadReference upserts the two static code tables. ON CONFLICT DO NOTHING
// keeps reruns idempotent.
func (l *Loader) LoadReference(ctx context.Context, identifiers, statuses []domain.CodeRow) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reference tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, row := range identifiers {
		if _, err := tx.ExecContext(ctx, insertIdentifierSQL, row.CodeID, row.Description); err != nil {
			return fmt.Errorf("insert identifier code %d: %w", row.CodeID, err)
		}
	}
	for _, row := range statuses {
		if _, err := tx.ExecContext(ctx, insertStatusSQL, row.CodeID, row.Description); err != nil {
			return fmt.Errorf("insert status code %d: %w", row.CodeID, err)
		}
	}
	return tx.Commit()
}

// LoadDataset writes one file's storms and observations in a single
// transaction so a failed file leaves nothing behind.
func (l *Loader) LoadDataset(ctx context.Context, ds pipeline.Dataset) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin dataset tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stormStmt, err := tx.PreparexContext(ctx, insertStormSQL)
	if err != nil {
		return fmt.Errorf("prepare storm insert: %w", err)
	}
	defer stormStmt.Close()
	for _, s := range ds.Storms {
		if _, err := stormStmt.ExecContext(ctx, stormArgs(s)...); err != nil {
			return fmt.Errorf("insert storm %s: %w", s.EventID, err)
		}
	}

	obsStmt, err := tx.PreparexContext(ctx, insertObservationSQL)
	if err != nil {
		return fmt.Errorf("prepare observation insert: %w", err)
	}
	defer obsStmt.Close()
	for _, o := range ds.Observations {
		if _, err := obsStmt.ExecContext(ctx, observationArgs(o)...); err != nil {
			return fmt.Errorf("insert observation for %s at %s: %w", o.EventID, o.PointTime, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit dataset: %w", err)
	}
	l.logger.Info("dataset committed",
		"source", ds.Source,
		"storms", len(ds.Storms),
		"observations", len(ds.Observations),
	)
	return nil
}

func stormArgs(s domain.Storm) []any {
	return []any{s.EventID, s.Basin, s.Name, s.StartTime, s.Path.WKT()}
}

func observationArgs(o domain.Observation) []any {
	return []any{
		o.EventID, o.PointTime, o.Identifier, o.Status,
		o.Latitude, o.Longitude, o.Location.WKT(),
		o.MaxWindKnots, o.MinPressureMB,
		o.NE34, o.SE34, o.SW34, o.NW34,
		o.NE50, o.SE50, o.SW50, o.NW50,
		o.NE64, o.SE64, o.SW64, o.NW64,
	}
}
