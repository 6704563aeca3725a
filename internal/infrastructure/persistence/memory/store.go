// Package memory is a process-local implementation of the repositories and
// unit of work. It backs the server when no DATABASE_URL is configured and
// serves as the store in application tests. Area is computed with the same
// Web Mercator projection PostGIS uses for SRID 3857.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/geo"
)

type siteRow struct {
	ref       domain.SiteRef
	polygon   orb.Polygon
	createdAt time.Time
	updatedAt time.Time
}

type state struct {
	users    map[domain.UserID]domain.User
	projects map[domain.ProjectID]domain.Project
	sites    map[domain.SiteID]siteRow

	lastUser    domain.UserID
	lastProject domain.ProjectID
	lastSite    domain.SiteID
}

func (s *state) clone() *state {
	c := *s
	c.users = maps.Clone(s.users)
	c.projects = maps.Clone(s.projects)
	c.sites = maps.Clone(s.sites)
	return &c
}

// Store serializes units of work. Each one runs against a copy of the state
// that replaces the live state only when fn succeeds.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		st: &state{
			users:    map[domain.UserID]domain.User{},
			projects: map[domain.ProjectID]domain.Project{},
			sites:    map[domain.SiteID]siteRow{},
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.st.clone()
	if err := fn(ctx, &txRepos{st: work, now: s.now}); err != nil {
		return err
	}
	s.st = work
	return nil
}

type txRepos struct {
	st  *state
	now func() time.Time
}

func (t *txRepos) Users() ports.UserRepository       { return userRepo{t} }
func (t *txRepos) Projects() ports.ProjectRepository { return projectRepo{t} }
func (t *txRepos) Sites() ports.SiteRepository       { return siteRepo{t} }

type userRepo struct{ t *txRepos }

func (r userRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.t.st.users {
		if u.Email == user.Email {
			return domerrors.ErrDuplicateEmail
		}
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	r.t.st.lastUser++
	now := r.t.now()
	user.ID, user.CreatedAt, user.UpdatedAt = r.t.st.lastUser, now, now
	r.t.st.users[user.ID] = *user
	return nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.t.st.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	u, ok := r.t.st.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r userRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.t.st.users))
	for _, id := range slices.Sorted(maps.Keys(r.t.st.users)) {
		u := r.t.st.users[id]
		out = append(out, &u)
	}
	return out, nil
}

func (r userRepo) UpdateRole(_ context.Context, id domain.UserID, role domain.Role) (*domain.User, error) {
	u, ok := r.t.st.users[id]
	if !ok {
		return nil, nil
	}
	u.Role = role
	u.UpdatedAt = r.t.now()
	r.t.st.users[id] = u
	return &u, nil
}

type projectRepo struct{ t *txRepos }

func (r projectRepo) Create(_ context.Context, p *domain.Project) error {
	r.t.st.lastProject++
	now := r.t.now()
	p.ID, p.CreatedAt, p.UpdatedAt = r.t.st.lastProject, now, now
	p.UpdatedByID = p.CreatedByID
	r.t.st.projects[p.ID] = *p
	return nil
}

func (r projectRepo) GetByID(_ context.Context, id domain.ProjectID) (*domain.Project, error) {
	p, ok := r.t.st.projects[id]
	if !ok {
		return nil, nil
	}
	return r.resolve(p), nil
}

func (r projectRepo) List(_ context.Context) ([]*domain.Project, error) {
	out := make([]*domain.Project, 0, len(r.t.st.projects))
	for _, id := range slices.Sorted(maps.Keys(r.t.st.projects)) {
		out = append(out, r.resolve(r.t.st.projects[id]))
	}
	return out, nil
}

func (r projectRepo) resolve(p domain.Project) *domain.Project {
	p.CreatedBy = r.nameOf(p.CreatedByID)
	p.UpdatedBy = r.nameOf(p.UpdatedByID)
	return &p
}

func (r projectRepo) nameOf(id *domain.UserID) string {
	if id != nil {
		if u, ok := r.t.st.users[*id]; ok {
			return u.Name
		}
	}
	return "system"
}

func (r projectRepo) SitesOf(_ context.Context, id domain.ProjectID) ([]domain.SiteRef, error) {
	refs := []domain.SiteRef{}
	for _, sid := range slices.Sorted(maps.Keys(r.t.st.sites)) {
		if row := r.t.st.sites[sid]; row.ref.ProjectID == id {
			refs = append(refs, row.ref)
		}
	}
	return refs, nil
}

func (r projectRepo) TotalAreaKm2(_ context.Context, id domain.ProjectID) (float64, error) {
	var total float64
	for _, row := range r.t.st.sites {
		if row.ref.ProjectID == id {
			total += geo.AreaKm2(row.polygon)
		}
	}
	return total, nil
}

func (r projectRepo) Update(_ context.Context, p *domain.Project) error {
	cur, ok := r.t.st.projects[p.ID]
	if !ok {
		return fmt.Errorf("project %s: %w", p.ID, domerrors.ErrProjectNotFound)
	}
	cur.Name, cur.Description, cur.UpdatedByID = p.Name, p.Description, p.UpdatedByID
	cur.UpdatedAt = r.t.now()
	r.t.st.projects[p.ID] = cur
	p.UpdatedAt = cur.UpdatedAt
	return nil
}

func (r projectRepo) Delete(_ context.Context, id domain.ProjectID) (bool, error) {
	if _, ok := r.t.st.projects[id]; !ok {
		return false, nil
	}
	delete(r.t.st.projects, id)
	maps.DeleteFunc(r.t.st.sites, func(_ domain.SiteID, row siteRow) bool {
		return row.ref.ProjectID == id
	})
	return true, nil
}

type siteRepo struct{ t *txRepos }

func (r siteRepo) Create(_ context.Context, projectID domain.ProjectID, name, polygonWKT string) (*domain.SiteRef, error) {
	if _, ok := r.t.st.projects[projectID]; !ok {
		return nil, fmt.Errorf("site project %s: %w", projectID, domerrors.ErrProjectNotFound)
	}
	poly, err := geo.ParsePolygonWKT(polygonWKT)
	if err != nil {
		return nil, err
	}
	r.t.st.lastSite++
	now := r.t.now()
	row := siteRow{
		ref:       domain.SiteRef{ID: r.t.st.lastSite, Name: name, ProjectID: projectID},
		polygon:   poly,
		createdAt: now,
		updatedAt: now,
	}
	r.t.st.sites[row.ref.ID] = row
	ref := row.ref
	return &ref, nil
}

func (r siteRepo) List(_ context.Context) ([]*domain.Site, error) {
	out := make([]*domain.Site, 0, len(r.t.st.sites))
	for _, id := range slices.Sorted(maps.Keys(r.t.st.sites)) {
		row := r.t.st.sites[id]
		out = append(out, &domain.Site{
			ID:        row.ref.ID,
			Name:      row.ref.Name,
			ProjectID: row.ref.ProjectID,
			Geometry:  geojson.NewGeometry(row.polygon),
			AreaKm2:   geo.Round2(geo.AreaKm2(row.polygon)),
			CreatedAt: row.createdAt,
			UpdatedAt: row.updatedAt,
		})
	}
	return out, nil
}

func (r siteRepo) Update(_ context.Context, id domain.SiteID, patch domain.SitePatch) (*domain.SiteRef, error) {
	row, ok := r.t.st.sites[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		row.ref.Name = *patch.Name
	}
	if patch.PolygonWKT != nil && *patch.PolygonWKT != "" {
		poly, err := geo.ParsePolygonWKT(*patch.PolygonWKT)
		if err != nil {
			return nil, err
		}
		row.polygon = poly
	}
	row.updatedAt = r.t.now()
	r.t.st.sites[id] = row
	ref := row.ref
	return &ref, nil
}

func (r siteRepo) Delete(_ context.Context, id domain.SiteID) (bool, error) {
	if _, ok := r.t.st.sites[id]; !ok {
		return false, nil
	}
	delete(r.t.st.sites, id)
	return true, nil
}

// Ensure Store implements ports.UnitOfWork.
var _ ports.UnitOfWork = (*Store)(nil)
