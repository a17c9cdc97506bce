package repository

import (
	"context"
	"database/sql"

	"github.com/SumitGhughtyal/Suraksha-Setu/internal/geo"
)

// The geofences table is managed externally (zones are authored by an
// operations tool); creating it here only guarantees a fresh database
// can serve, with the empty set meaning every report alerts.
const geofenceSchema = `
CREATE TABLE IF NOT EXISTS geofences (
	id SERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	area GEOGRAPHY(POLYGON, 4326) NOT NULL
)`

// GeofenceRepository answers containment queries against the geofences
// table using PostGIS geography operators.
type GeofenceRepository struct {
	db *sql.DB
}

// NewGeofenceRepository creates a new GeofenceRepository.
func NewGeofenceRepository(db *sql.DB) *GeofenceRepository {
	return &GeofenceRepository{db: db}
}

// EnsureSchema creates the geofences table if it does not exist.
func (r *GeofenceRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, geofenceSchema)
	return err
}

// CoveringZones returns the names of all geofences covering the point.
// ST_Covers on geography evaluates on the spheroid with the boundary
// counted as inside.
func (r *GeofenceRepository) CoveringZones(ctx context.Context, lat, lon float64) ([]string, error) {
	query := `SELECT name FROM geofences
		WHERE ST_Covers(area, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography)`

	rows, err := r.db.QueryContext(ctx, query, lon, lat)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// LoadIndex reads every zone as GeoJSON and builds an in-memory fence
// index, for callers that prefer evaluating containment locally.
func (r *GeofenceRepository) LoadIndex(ctx context.Context) (*geo.FenceIndex, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, ST_AsGeoJSON(area) FROM geofences`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fences []geo.Fence
	for rows.Next() {
		var name, area string
		if err := rows.Scan(&name, &area); err != nil {
			return nil, err
		}
		fence, err := geo.ParseFence(name, []byte(area))
		if err != nil {
			return nil, err
		}
		fences = append(fences, fence)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return geo.NewFenceIndex(fences...), nil
}
