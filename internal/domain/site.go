package domain

import (
	"strconv"
	"time"

	"github.com/paulmach/orb/geojson"
)

// SiteID is a value object for site identity.
type SiteID int64

// String returns the decimal form.
func (s SiteID) String() string { return strconv.FormatInt(int64(s), 10) }

// SRID is the spatial reference every stored polygon is tagged with (WGS84 lon/lat).
const SRID = 4326

// AreaSRID is the planar reference polygons are projected to before area integration (Web Mercator).
const AreaSRID = 3857

// SiteRef is the short form of a site returned by mutations and project listings.
type SiteRef struct {
	ID        SiteID
	Name      string
	ProjectID ProjectID
}

// Site is a polygon owned by a project, with its derived area.
type Site struct {
	ID        SiteID
	Name      string
	ProjectID ProjectID
	// Geometry is nil when the stored polygon is NULL.
	Geometry  *geojson.Geometry
	AreaKm2   float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SitePatch carries the fields of a partial site update.
type SitePatch struct {
	Name       *string
	PolygonWKT *string
}
