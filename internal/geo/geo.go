// Package geo evaluates geofence containment on the sphere. Fences are
// authored as GeoJSON polygons in WGS84 degrees, so a flat point-in-polygon
// test would misclassify points near zone edges at city scale and beyond;
// containment is therefore evaluated on s2 spherical geometry.
package geo

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var (
	ErrUnsupportedGeometry = errors.New("geofence area must be a polygon or multipolygon")
	ErrDegenerateRing      = errors.New("geofence ring has fewer than three distinct vertices")
)

// Fence is a named safe zone with a prebuilt spatial index.
type Fence struct {
	Name string

	index *s2.ShapeIndex
}

// NewFence builds a fence from a polygon or multipolygon geometry.
func NewFence(name string, g orb.Geometry) (Fence, error) {
	index := s2.NewShapeIndex()

	switch area := g.(type) {
	case orb.Polygon:
		poly, err := polygonFromRings(area)
		if err != nil {
			return Fence{}, fmt.Errorf("fence %q: %w", name, err)
		}
		index.Add(poly)
	case orb.MultiPolygon:
		for _, rings := range area {
			poly, err := polygonFromRings(rings)
			if err != nil {
				return Fence{}, fmt.Errorf("fence %q: %w", name, err)
			}
			index.Add(poly)
		}
	default:
		return Fence{}, fmt.Errorf("fence %q: %w", name, ErrUnsupportedGeometry)
	}

	return Fence{Name: name, index: index}, nil
}

// ParseFence builds a fence from a raw GeoJSON geometry document.
func ParseFence(name string, area []byte) (Fence, error) {
	g, err := geojson.UnmarshalGeometry(area)
	if err != nil {
		return Fence{}, fmt.Errorf("fence %q: decoding area: %w", name, err)
	}
	return NewFence(name, g.Geometry())
}

// ParseFeatureCollection builds fences from a GeoJSON FeatureCollection,
// naming each fence after its "name" property.
func ParseFeatureCollection(data []byte) ([]Fence, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decoding feature collection: %w", err)
	}

	fences := make([]Fence, 0, len(fc.Features))
	for i, feature := range fc.Features {
		name := feature.Properties.MustString("name", fmt.Sprintf("zone-%d", i))
		fence, err := NewFence(name, feature.Geometry)
		if err != nil {
			return nil, err
		}
		fences = append(fences, fence)
	}
	return fences, nil
}

// Covers reports whether the point lies inside the fence, boundary
// included. Vertices count as inside via the closed vertex model,
// matching PostGIS ST_Covers semantics.
func (f Fence) Covers(lat, lon float64) bool {
	pt := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	return s2.NewContainsPointQuery(f.index, s2.VertexModelClosed).Contains(pt)
}

// FenceIndex evaluates a point against a set of fences. It satisfies the
// location service's GeofenceLocator and backs deployments that load
// zones from a file instead of a PostGIS table.
type FenceIndex struct {
	fences []Fence
}

// NewFenceIndex creates an index over the given fences. An empty index
// covers nothing: every report evaluates as outside all zones.
func NewFenceIndex(fences ...Fence) *FenceIndex {
	return &FenceIndex{fences: fences}
}

// CoveringZones returns the names of all fences covering the point.
func (x *FenceIndex) CoveringZones(_ context.Context, lat, lon float64) ([]string, error) {
	var names []string
	for _, f := range x.fences {
		if f.Covers(lat, lon) {
			names = append(names, f.Name)
		}
	}
	return names, nil
}

func polygonFromRings(rings orb.Polygon) (*s2.Polygon, error) {
	loops := make([]*s2.Loop, 0, len(rings))
	for _, ring := range rings {
		// GeoJSON rings repeat the first vertex at the end; s2 loops do not.
		if len(ring) < 4 {
			return nil, ErrDegenerateRing
		}
		pts := make([]s2.Point, 0, len(ring)-1)
		for _, p := range ring[:len(ring)-1] {
			pts = append(pts, s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat(), p.Lon())))
		}
		loop := s2.LoopFromPoints(pts)
		if len(rings) == 1 {
			// Tolerate clockwise-wound exterior rings in hand-authored zones.
			loop.Normalize()
		}
		loops = append(loops, loop)
	}
	return s2.PolygonFromOrientedLoops(loops), nil
}
