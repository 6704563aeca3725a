// Package geo validates site polygons and computes the same derived values
// PostGIS produces for them: GeoJSON geometry and area in square kilometres.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"

	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
)

const sqMetersPerSqKm = 1_000_000

// ParsePolygonWKT parses a WKT POLYGON. Empty input is ErrMissingGeometry; anything
// that is not a polygon with closed rings of at least four finite points is ErrInvalidGeometry.
func ParsePolygonWKT(s string) (orb.Polygon, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, domerrors.ErrMissingGeometry
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrInvalidGeometry, err)
	}
	poly, ok := g.(orb.Polygon)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", domerrors.ErrInvalidGeometry, g.GeoJSONType())
	}
	if len(poly) == 0 {
		return nil, fmt.Errorf("%w: empty polygon", domerrors.ErrInvalidGeometry)
	}
	for i, ring := range poly {
		if len(ring) < 4 {
			return nil, fmt.Errorf("%w: ring %d has %d points", domerrors.ErrInvalidGeometry, i, len(ring))
		}
		if !ring.Closed() {
			return nil, fmt.Errorf("%w: ring %d is not closed", domerrors.ErrInvalidGeometry, i)
		}
		for _, pt := range ring {
			if !finite(pt[0]) || !finite(pt[1]) {
				return nil, fmt.Errorf("%w: ring %d has a non-finite coordinate", domerrors.ErrInvalidGeometry, i)
			}
		}
	}
	return poly, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// DecodeGeoJSON parses a GeoJSON geometry such as the output of ST_AsGeoJSON.
func DecodeGeoJSON(data []byte) (*geojson.Geometry, error) {
	if len(data) == 0 {
		return nil, errors.New("empty geojson")
	}
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	return g, nil
}

// AreaKm2 projects a lon/lat polygon to Web Mercator and integrates its planar
// area, matching ST_Area(ST_Transform(polygon, 3857)) / 1e6.
func AreaKm2(poly orb.Polygon) float64 {
	projected := project.Polygon(poly.Clone(), project.WGS84.ToMercator)
	return math.Abs(planar.Area(projected)) / sqMetersPerSqKm
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
