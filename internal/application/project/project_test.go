package project_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/application/project"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/geo"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/persistence/memory"
)

const square = "POLYGON((0 0, 1 0, 1 1, 0 1, 0 0))"

func seedUser(t *testing.T, s *memory.Store, name, email string) *domain.User {
	t.Helper()
	u := &domain.User{Name: name, Email: email, Role: domain.RoleAdmin}
	require.NoError(t, s.Do(context.Background(), func(ctx context.Context, tx ports.Tx) error {
		return tx.Users().Create(ctx, u)
	}))
	return u
}

func seedSite(t *testing.T, s *memory.Store, pid domain.ProjectID, name string) {
	t.Helper()
	require.NoError(t, s.Do(context.Background(), func(ctx context.Context, tx ports.Tx) error {
		_, err := tx.Sites().Create(ctx, pid, name, square)
		return err
	}))
}

func TestCreateProject_AttributesActor(t *testing.T) {
	s := memory.NewStore()
	admin := seedUser(t, s, "Asha", "asha@x.io")

	p, err := project.NewCreateProject(s).Execute(context.Background(), project.CreateProjectInput{
		Name:  "Mangroves",
		Actor: admin,
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "", p.Description)
	assert.Equal(t, "Asha", p.CreatedBy)
	assert.Equal(t, "Asha", p.UpdatedBy)
	require.NotNil(t, p.CreatedByID)
	assert.Equal(t, admin.ID, *p.CreatedByID)
}

func TestListProjects_Aggregates(t *testing.T) {
	s := memory.NewStore()
	admin := seedUser(t, s, "Asha", "asha@x.io")
	ctx := context.Background()

	withSites, err := project.NewCreateProject(s).Execute(ctx, project.CreateProjectInput{Name: "A", Actor: admin})
	require.NoError(t, err)
	empty, err := project.NewCreateProject(s).Execute(ctx, project.CreateProjectInput{Name: "B", Actor: admin})
	require.NoError(t, err)
	seedSite(t, s, withSites.ID, "North")
	seedSite(t, s, withSites.ID, "South")

	summaries, err := project.NewListProjects(s).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	a := summaries[0]
	assert.Equal(t, withSites.ID, a.ID)
	assert.Equal(t, 2, a.SiteCount())
	assert.Equal(t, "North", a.Sites[0].Name)
	assert.InDelta(t, 24785.32, a.TotalAreaSqKm, 2.0)
	assert.Equal(t, geo.Round2(a.TotalAreaSqKm), a.TotalAreaSqKm)

	b := summaries[1]
	assert.Equal(t, empty.ID, b.ID)
	assert.Zero(t, b.SiteCount())
	assert.Zero(t, b.TotalAreaSqKm)
	assert.NotNil(t, b.Sites)
}

func TestUpdateProject_Partial(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	creator := seedUser(t, s, "Asha", "asha@x.io")
	editor := seedUser(t, s, "Ravi", "ravi@x.io")

	p, err := project.NewCreateProject(s).Execute(ctx, project.CreateProjectInput{Name: "Old", Description: "keep", Actor: creator})
	require.NoError(t, err)

	name := "New"
	got, err := project.NewUpdateProject(s).Execute(ctx, project.UpdateProjectInput{
		ID:    p.ID,
		Patch: domain.ProjectPatch{Name: &name},
		Actor: editor,
	})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, "keep", got.Description)
	assert.Equal(t, "Asha", got.CreatedBy)
	assert.Equal(t, "Ravi", got.UpdatedBy)

	summaries, err := project.NewListProjects(s).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", summaries[0].UpdatedBy)
}

func TestUpdateProject_NotFound(t *testing.T) {
	s := memory.NewStore()
	_, err := project.NewUpdateProject(s).Execute(context.Background(), project.UpdateProjectInput{ID: 42})
	assert.ErrorIs(t, err, domerrors.ErrProjectNotFound)
}

func TestDeleteProject_CascadesSites(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	p, err := project.NewCreateProject(s).Execute(ctx, project.CreateProjectInput{Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, "system", p.CreatedBy)
	seedSite(t, s, p.ID, "North")
	seedSite(t, s, p.ID, "South")

	removed, err := project.NewDeleteProject(s).Execute(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = project.NewDeleteProject(s).Execute(ctx, p.ID)
	assert.ErrorIs(t, err, domerrors.ErrProjectNotFound)

	require.NoError(t, s.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		sites, err := tx.Sites().List(ctx)
		assert.Empty(t, sites)
		return err
	}))
}
