package model

import "time"

// LocationReport represents a row in the location_history table.
// Reports are append-only; timestamp is the client-supplied event time,
// CreatedAt is when the row was ingested.
type LocationReport struct {
	ID        int64     `json:"id"`
	TouristID int64     `json:"tourist_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportLocationRequest represents a location ingest request. Fields are
// pointers so a missing field is distinguishable from a legitimate zero
// value — (0, 0) is a real coordinate.
type ReportLocationRequest struct {
	TouristID *int64     `json:"touristId"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Timestamp *time.Time `json:"timestamp"`
}
