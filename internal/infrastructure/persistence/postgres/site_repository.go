package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/geo"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/persistence/dbx"
)

const (
	insertSiteSQL = `INSERT INTO sites (project_id, name, polygon)
		VALUES ($1, $2, ST_GeomFromText($3, 4326))
		RETURNING id`
	listSitesSQL = `SELECT id, name, project_id,
		ST_AsGeoJSON(polygon),
		COALESCE(ST_Area(ST_Transform(polygon, 3857)) / 1000000, 0),
		created_at, updated_at
		FROM sites ORDER BY id`
	// NULL parameters keep the current value; ST_GeomFromText(NULL) is NULL.
	updateSiteSQL = `UPDATE sites SET
		name = COALESCE($1::text, name),
		polygon = COALESCE(ST_GeomFromText($2::text, 4326), polygon),
		updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, project_id`
	deleteSiteSQL = `DELETE FROM sites WHERE id = $1`
)

type SiteRepository struct {
	db dbx.DBTX
}

func NewSiteRepository(db dbx.DBTX) *SiteRepository {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) Create(ctx context.Context, projectID domain.ProjectID, name, polygonWKT string) (*domain.SiteRef, error) {
	ref := &domain.SiteRef{Name: name, ProjectID: projectID}
	if err := r.db.QueryRowContext(ctx, insertSiteSQL, int64(projectID), name, polygonWKT).Scan(&ref.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ref, nil
}

func (r *SiteRepository) List(ctx context.Context) ([]*domain.Site, error) {
	rows, err := r.db.QueryContext(ctx, listSitesSQL)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var sites []*domain.Site
	for rows.Next() {
		var (
			s       domain.Site
			geoJSON sql.NullString
			area    sql.NullFloat64
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.ProjectID, &geoJSON, &area, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if geoJSON.Valid && geoJSON.String != "" {
			g, err := geo.DecodeGeoJSON([]byte(geoJSON.String))
			if err != nil {
				return nil, fmt.Errorf("site %d: %w", s.ID, err)
			}
			s.Geometry = g
		}
		if area.Valid {
			s.AreaKm2 = geo.Round2(area.Float64)
		}
		sites = append(sites, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return sites, nil
}

func (r *SiteRepository) Update(ctx context.Context, id domain.SiteID, patch domain.SitePatch) (*domain.SiteRef, error) {
	var polygon *string
	if patch.PolygonWKT != nil && *patch.PolygonWKT != "" {
		polygon = patch.PolygonWKT
	}
	ref := &domain.SiteRef{}
	err := r.db.QueryRowContext(ctx, updateSiteSQL, nullString(patch.Name), nullString(polygon), int64(id)).
		Scan(&ref.ID, &ref.Name, &ref.ProjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return ref, nil
}

func (r *SiteRepository) Delete(ctx context.Context, id domain.SiteID) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteSiteSQL, int64(id))
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// Ensure SiteRepository implements ports.SiteRepository.
var _ ports.SiteRepository = (*SiteRepository)(nil)
