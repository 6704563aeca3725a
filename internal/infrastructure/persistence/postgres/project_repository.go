package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/persistence/dbx"
)

const (
	// Attribution names are resolved at read time; projects without a live author read as "system".
	selectProjectSQL = `SELECT p.id, p.name, p.description, p.created_at, p.updated_at,
		p.created_by_id, p.updated_by_id,
		COALESCE(cu.name, 'system'), COALESCE(uu.name, 'system')
		FROM projects p
		LEFT JOIN users cu ON cu.id = p.created_by_id
		LEFT JOIN users uu ON uu.id = p.updated_by_id`

	insertProjectSQL = `INSERT INTO projects (name, description, created_by_id, updated_by_id)
		VALUES ($1, $2, $3, $3)
		RETURNING id, created_at, updated_at`
	projectByIDSQL   = selectProjectSQL + ` WHERE p.id = $1`
	listProjectsSQL  = selectProjectSQL + ` ORDER BY p.id`
	projectSitesSQL  = `SELECT id, name FROM sites WHERE project_id = $1 ORDER BY id`
	projectAreaSQL   = `SELECT COALESCE(SUM(ST_Area(ST_Transform(polygon, 3857))), 0) / 1000000
		FROM sites WHERE project_id = $1`
	updateProjectSQL = `UPDATE projects SET name = $1, description = $2, updated_by_id = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at`
	deleteProjectSQL = `DELETE FROM projects WHERE id = $1`
)

type ProjectRepository struct {
	db dbx.DBTX
}

func NewProjectRepository(db dbx.DBTX) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	err := r.db.QueryRowContext(ctx, insertProjectSQL, p.Name, p.Description, nullUserID(p.CreatedByID)).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx, projectByIDSQL, int64(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, listProjectsSQL)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) SitesOf(ctx context.Context, id domain.ProjectID) ([]domain.SiteRef, error) {
	rows, err := r.db.QueryContext(ctx, projectSitesSQL, int64(id))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	sites := []domain.SiteRef{}
	for rows.Next() {
		s := domain.SiteRef{ProjectID: id}
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		sites = append(sites, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return sites, nil
}

func (r *ProjectRepository) TotalAreaKm2(ctx context.Context, id domain.ProjectID) (float64, error) {
	var area sql.NullFloat64
	err := r.db.QueryRowContext(ctx, projectAreaSQL, int64(id)).Scan(&area)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	if !area.Valid {
		return 0, nil
	}
	return area.Float64, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	err := r.db.QueryRowContext(ctx, updateProjectSQL, p.Name, p.Description, nullUserID(p.UpdatedByID), int64(p.ID)).
		Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id domain.ProjectID) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteProjectSQL, int64(id))
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p                    domain.Project
		createdBy, updatedBy sql.NullInt64
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt,
		&createdBy, &updatedBy, &p.CreatedBy, &p.UpdatedBy)
	if err != nil {
		return nil, err
	}
	p.CreatedByID = userIDPtr(createdBy)
	p.UpdatedByID = userIDPtr(updatedBy)
	return &p, nil
}

func nullUserID(id *domain.UserID) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*id), Valid: true}
}

func userIDPtr(v sql.NullInt64) *domain.UserID {
	if !v.Valid {
		return nil
	}
	id := domain.UserID(v.Int64)
	return &id
}

// Ensure ProjectRepository implements ports.ProjectRepository.
var _ ports.ProjectRepository = (*ProjectRepository)(nil)
