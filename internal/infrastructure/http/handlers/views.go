package handlers

import (
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
)

// UserView is the public form of a user; the password hash never leaves the server.
type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func userView(u *domain.User) UserView {
	return UserView{ID: int64(u.ID), Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

type ProjectView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedBy   string    `json:"created_by"`
	UpdatedBy   string    `json:"updated_by"`
}

func projectView(p *domain.Project) ProjectView {
	return ProjectView{
		ID:          int64(p.ID),
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		CreatedBy:   p.CreatedBy,
		UpdatedBy:   p.UpdatedBy,
	}
}

type SiteRefView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProjectSummaryView struct {
	ProjectView
	Sites         []SiteRefView `json:"sites"`
	SiteCount     int           `json:"site_count"`
	TotalAreaSqKm float64       `json:"total_area_sqkm"`
}

func projectSummaryView(s *domain.ProjectSummary) ProjectSummaryView {
	sites := make([]SiteRefView, 0, len(s.Sites))
	for _, ref := range s.Sites {
		sites = append(sites, SiteRefView{ID: int64(ref.ID), Name: ref.Name})
	}
	return ProjectSummaryView{
		ProjectView:   projectView(&s.Project),
		Sites:         sites,
		SiteCount:     s.SiteCount(),
		TotalAreaSqKm: s.TotalAreaSqKm,
	}
}

// SiteMutationView answers site writes. AreaKm2 is present when the write carried a polygon.
type SiteMutationView struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	ProjectID int64    `json:"project_id"`
	AreaKm2   *float64 `json:"area_km2,omitempty"`
}

type SiteView struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	ProjectID int64             `json:"project_id"`
	GeoJSON   *geojson.Geometry `json:"geojson"`
	AreaKm2   float64           `json:"area_km2"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func siteView(s *domain.Site) SiteView {
	return SiteView{
		ID:        int64(s.ID),
		Name:      s.Name,
		ProjectID: int64(s.ProjectID),
		GeoJSON:   s.Geometry,
		AreaKm2:   s.AreaKm2,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
