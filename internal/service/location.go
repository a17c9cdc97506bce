package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SumitGhughtyal/Suraksha-Setu/internal/model"
)

var (
	ErrTouristIDRequired = errors.New("touristId is required")
	ErrLatitudeRequired  = errors.New("latitude is required")
	ErrLongitudeRequired = errors.New("longitude is required")
	ErrTimestampRequired = errors.New("timestamp is required")
)

// ReportStore is the persistence surface for location reports.
type ReportStore interface {
	CreateReport(ctx context.Context, report *model.LocationReport) error
	ListByTourist(ctx context.Context, touristID int64) ([]model.LocationReport, error)
}

// GeofenceLocator answers which safe zones cover a coordinate.
// repository.GeofenceRepository evaluates it in PostGIS; geo.FenceIndex
// evaluates it in memory.
type GeofenceLocator interface {
	CoveringZones(ctx context.Context, lat, lon float64) ([]string, error)
}

// Notifier delivers out-of-zone alerts. Delivery is best-effort: the
// location service logs failures and never propagates them.
type Notifier interface {
	Notify(ctx context.Context, touristID int64, message string) error
}

// LocationService ingests coordinate reports and raises an alert when a
// report falls outside every registered safe zone.
type LocationService struct {
	reports ReportStore
	zones   GeofenceLocator
	alerts  Notifier
}

// NewLocationService creates a new LocationService.
func NewLocationService(reports ReportStore, zones GeofenceLocator, alerts Notifier) *LocationService {
	return &LocationService{reports: reports, zones: zones, alerts: alerts}
}

// Ingest validates and stores a report, then evaluates it against the
// registered geofences. The report row is the source of truth: once it
// is stored, geofence or alert failures cannot fail the ingest.
func (s *LocationService) Ingest(ctx context.Context, req model.ReportLocationRequest) (*model.LocationReport, error) {
	if req.TouristID == nil {
		return nil, ErrTouristIDRequired
	}
	if req.Latitude == nil {
		return nil, ErrLatitudeRequired
	}
	if req.Longitude == nil {
		return nil, ErrLongitudeRequired
	}
	if req.Timestamp == nil {
		return nil, ErrTimestampRequired
	}

	report := &model.LocationReport{
		TouristID: *req.TouristID,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Timestamp: *req.Timestamp,
	}

	if err := s.reports.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	s.evaluate(ctx, report)
	return report, nil
}

// History returns a tourist's stored reports, most recent event first.
func (s *LocationService) History(ctx context.Context, touristID int64) ([]model.LocationReport, error) {
	return s.reports.ListByTourist(ctx, touristID)
}

func (s *LocationService) evaluate(ctx context.Context, report *model.LocationReport) {
	names, err := s.zones.CoveringZones(ctx, report.Latitude, report.Longitude)
	if err != nil {
		slog.Error("geofence evaluation failed", "tourist_id", report.TouristID, "error", err)
		return
	}

	if len(names) > 0 {
		slog.Info("tourist inside safe zone", "tourist_id", report.TouristID, "zone", names[0])
		return
	}

	slog.Warn("tourist outside all safe zones",
		"tourist_id", report.TouristID,
		"latitude", report.Latitude,
		"longitude", report.Longitude)

	msg := fmt.Sprintf("Tourist %d reported a position (%.5f, %.5f) outside all safe zones.",
		report.TouristID, report.Latitude, report.Longitude)
	if err := s.alerts.Notify(ctx, report.TouristID, msg); err != nil {
		slog.Error("alert delivery failed", "tourist_id", report.TouristID, "error", err)
	}
}
