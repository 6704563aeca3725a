package ports

import (
	"context"

	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
)

// UserRepository defines persistence for users. Lookups return (nil, nil) when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// UpdateRole returns (nil, nil) if the user does not exist.
	UpdateRole(ctx context.Context, id domain.UserID, role domain.Role) (*domain.User, error)
}

// ProjectRepository defines persistence for projects and their spatial aggregates.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	SitesOf(ctx context.Context, id domain.ProjectID) ([]domain.SiteRef, error)
	// TotalAreaKm2 sums the projected area of every site of the project; 0 when it has none.
	TotalAreaKm2(ctx context.Context, id domain.ProjectID) (float64, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id domain.ProjectID) (bool, error)
}

// SiteRepository defines persistence for sites. Polygons are written as WKT and tagged with domain.SRID.
type SiteRepository interface {
	Create(ctx context.Context, projectID domain.ProjectID, name, polygonWKT string) (*domain.SiteRef, error)
	List(ctx context.Context) ([]*domain.Site, error)
	// Update returns (nil, nil) if the site does not exist.
	Update(ctx context.Context, id domain.SiteID, patch domain.SitePatch) (*domain.SiteRef, error)
	Delete(ctx context.Context, id domain.SiteID) (bool, error)
}

// Tx exposes repositories bound to a single transaction.
type Tx interface {
	Users() UserRepository
	Projects() ProjectRepository
	Sites() SiteRepository
}

// UnitOfWork runs fn inside one transaction: committed when fn returns nil, rolled back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
