package geo

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
)

const unitSquare = "POLYGON((0 0,0 1,1 1,1 0,0 0))"

func TestParsePolygonWKT_Valid(t *testing.T) {
	poly, err := ParsePolygonWKT(unitSquare)
	require.NoError(t, err)
	require.Len(t, poly, 1)
	assert.Equal(t, orb.Ring{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}, poly[0])
}

func TestParsePolygonWKT_WithHole(t *testing.T) {
	poly, err := ParsePolygonWKT("POLYGON((0 0,0 10,10 10,10 0,0 0),(2 2,2 3,3 3,3 2,2 2))")
	require.NoError(t, err)
	assert.Len(t, poly, 2)
}

func TestParsePolygonWKT_Errors(t *testing.T) {
	cases := map[string]error{
		"":                                      domerrors.ErrMissingGeometry,
		"   ":                                   domerrors.ErrMissingGeometry,
		"POINT(1 2)":                            domerrors.ErrInvalidGeometry,
		"LINESTRING(0 0,1 1)":                   domerrors.ErrInvalidGeometry,
		"POLYGON((0 0,0 1,1 1,1 0))":            domerrors.ErrInvalidGeometry,
		"POLYGON((0 0,1 1,0 0))":                domerrors.ErrInvalidGeometry,
		"not a polygon at all":                  domerrors.ErrInvalidGeometry,
		"MULTIPOLYGON(((0 0,0 1,1 1,1 0,0 0)))": domerrors.ErrInvalidGeometry,
		"POLYGON((0 0,Inf 0,1 1,0 1,0 0))":      domerrors.ErrInvalidGeometry,
		"POLYGON((0 0,1 -Inf,1 1,0 1,0 0))":     domerrors.ErrInvalidGeometry,
		"POLYGON((0 0,NaN 0,1 1,0 1,0 0))":      domerrors.ErrInvalidGeometry,
	}
	for in, want := range cases {
		_, err := ParsePolygonWKT(in)
		if !errors.Is(err, want) {
			t.Errorf("ParsePolygonWKT(%q) = %v, want %v", in, err, want)
		}
	}
}

func TestAreaKm2_UnitSquareAtEquator(t *testing.T) {
	poly, err := ParsePolygonWKT(unitSquare)
	require.NoError(t, err)
	// One degree at the equator in spherical mercator is 111319.49 m wide; the
	// northern edge at 1 degree latitude maps to 111325.14 m.
	area := AreaKm2(poly)
	assert.InDelta(t, 12392.6, area, 1.0)
	assert.GreaterOrEqual(t, area, 0.0)
}

func TestAreaKm2_OrientationDoesNotMatter(t *testing.T) {
	cw, err := ParsePolygonWKT("POLYGON((0 0,1 0,1 1,0 1,0 0))")
	require.NoError(t, err)
	ccw, err := ParsePolygonWKT(unitSquare)
	require.NoError(t, err)
	assert.InDelta(t, AreaKm2(ccw), AreaKm2(cw), 1e-9)
}

func TestAreaKm2_DoesNotMutateInput(t *testing.T) {
	poly, err := ParsePolygonWKT(unitSquare)
	require.NoError(t, err)
	_ = AreaKm2(poly)
	assert.Equal(t, orb.Point{1, 1}, poly[0][2])
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.2345))
	assert.Equal(t, 1.24, Round2(1.235000001))
	assert.Equal(t, 0.0, Round2(0.004))
}

func TestDecodeGeoJSON(t *testing.T) {
	g, err := DecodeGeoJSON([]byte(`{"type":"Polygon","coordinates":[[[0,0],[0,1],[1,1],[1,0],[0,0]]]}`))
	require.NoError(t, err)
	poly, ok := g.Coordinates.(orb.Polygon)
	require.True(t, ok)
	assert.Equal(t, orb.Point{0, 1}, poly[0][1])

	_, err = DecodeGeoJSON(nil)
	assert.Error(t, err)
	_, err = DecodeGeoJSON([]byte(`{"type":"Polygon","coordinates":"nope"}`))
	assert.Error(t, err)
}

// A polygon parsed from WKT and serialized as GeoJSON must come back with the same ring.
func TestWKTToGeoJSONRoundTrip(t *testing.T) {
	inputs := []string{
		unitSquare,
		"POLYGON((77.5946 12.9716,77.6046 12.9716,77.6046 12.9816,77.5946 12.9816,77.5946 12.9716))",
		"POLYGON((-70.1 -33.4,-70.0 -33.4,-70.05 -33.3,-70.1 -33.4))",
	}
	for _, in := range inputs {
		poly, err := ParsePolygonWKT(in)
		require.NoError(t, err, in)

		raw, err := json.Marshal(geojson.NewGeometry(poly))
		require.NoError(t, err)

		back, err := DecodeGeoJSON(raw)
		require.NoError(t, err)
		got, ok := back.Coordinates.(orb.Polygon)
		require.True(t, ok)
		require.Len(t, got, len(poly))
		for i := range poly {
			require.Len(t, got[i], len(poly[i]))
			for j := range poly[i] {
				assert.InDelta(t, poly[i][j][0], got[i][j][0], 1e-9)
				assert.InDelta(t, poly[i][j][1], got[i][j][1], 1e-9)
			}
		}
	}
}
