package repository

import (
	"context"
	"database/sql"

	"github.com/SumitGhughtyal/Suraksha-Setu/internal/model"
)

const locationSchema = `
CREATE TABLE IF NOT EXISTS location_history (
	id SERIAL PRIMARY KEY,
	tourist_id INT NOT NULL,
	latitude DOUBLE PRECISION NOT NULL,
	longitude DOUBLE PRECISION NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
)`

// LocationRepository handles location report persistence.
type LocationRepository struct {
	db *sql.DB
}

// NewLocationRepository creates a new LocationRepository.
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// EnsureSchema creates the location_history table if it does not exist.
func (r *LocationRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, locationSchema)
	return err
}

// CreateReport inserts a location report and fills in the generated id
// and ingestion time. Reports are append-only.
func (r *LocationRepository) CreateReport(ctx context.Context, report *model.LocationReport) error {
	query := `INSERT INTO location_history (tourist_id, latitude, longitude, timestamp)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		report.TouristID, report.Latitude, report.Longitude, report.Timestamp,
	).Scan(&report.ID, &report.CreatedAt)
}

// ListByTourist returns a tourist's reports, most recent event first.
func (r *LocationRepository) ListByTourist(ctx context.Context, touristID int64) ([]model.LocationReport, error) {
	query := `SELECT id, tourist_id, latitude, longitude, timestamp, created_at
		FROM location_history WHERE tourist_id = $1 ORDER BY timestamp DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, touristID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []model.LocationReport{}
	for rows.Next() {
		var rep model.LocationReport
		if err := rows.Scan(&rep.ID, &rep.TouristID, &rep.Latitude,
			&rep.Longitude, &rep.Timestamp, &rep.CreatedAt); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}
