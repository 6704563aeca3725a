package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
)

const square = "POLYGON((0 0, 1 0, 1 1, 0 1, 0 0))"

func TestStore_UsersAndDuplicateEmail(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		require.NoError(t, tx.Users().Create(ctx, &domain.User{Name: "A", Email: "a@x.io"}))
		return tx.Users().Create(ctx, &domain.User{Name: "B", Email: "a@x.io"})
	})
	assert.ErrorIs(t, err, domerrors.ErrDuplicateEmail)

	// The failed unit of work left nothing behind.
	_ = s.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		users, err := tx.Users().List(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
		return nil
	})
}

func TestStore_EmailIsCaseSensitive(t *testing.T) {
	s := NewStore()
	err := s.Do(context.Background(), func(ctx context.Context, tx ports.Tx) error {
		if err := tx.Users().Create(ctx, &domain.User{Name: "A", Email: "a@x.io"}); err != nil {
			return err
		}
		if err := tx.Users().Create(ctx, &domain.User{Name: "B", Email: "A@x.io"}); err != nil {
			return err
		}
		u, err := tx.Users().GetByEmail(ctx, "A@x.io")
		require.NoError(t, err)
		assert.Equal(t, "B", u.Name)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_ProjectCascadeAndArea(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	var pid domain.ProjectID

	require.NoError(t, s.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		u := &domain.User{Name: "Asha", Email: "asha@x.io", Role: domain.RoleAdmin}
		require.NoError(t, tx.Users().Create(ctx, u))
		p := &domain.Project{Name: "Mangroves", CreatedByID: &u.ID}
		require.NoError(t, tx.Projects().Create(ctx, p))
		pid = p.ID
		_, err := tx.Sites().Create(ctx, pid, "North", square)
		require.NoError(t, err)
		_, err = tx.Sites().Create(ctx, pid, "South", square)
		return err
	}))

	require.NoError(t, s.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		p, err := tx.Projects().GetByID(ctx, pid)
		require.NoError(t, err)
		assert.Equal(t, "Asha", p.CreatedBy)
		assert.Equal(t, "Asha", p.UpdatedBy)

		area, err := tx.Projects().TotalAreaKm2(ctx, pid)
		require.NoError(t, err)
		assert.InDelta(t, 2*12392.66, area, 2.0)

		sites, err := tx.Sites().List(ctx)
		require.NoError(t, err)
		require.Len(t, sites, 2)
		assert.Equal(t, "Polygon", sites[0].Geometry.Type)

		ok, err := tx.Projects().Delete(ctx, pid)
		require.NoError(t, err)
		assert.True(t, ok)
		refs, err := tx.Projects().SitesOf(ctx, pid)
		require.NoError(t, err)
		assert.Empty(t, refs)
		return nil
	}))
}

func TestStore_SiteRequiresProject(t *testing.T) {
	s := NewStore()
	err := s.Do(context.Background(), func(ctx context.Context, tx ports.Tx) error {
		_, err := tx.Sites().Create(ctx, 42, "Orphan", square)
		return err
	})
	assert.ErrorIs(t, err, domerrors.ErrProjectNotFound)
}

func TestStore_SiteUpdateAndMissing(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		p := &domain.Project{Name: "P"}
		require.NoError(t, tx.Projects().Create(ctx, p))
		ref, err := tx.Sites().Create(ctx, p.ID, "S", square)
		require.NoError(t, err)

		name := "Renamed"
		got, err := tx.Sites().Update(ctx, ref.ID, domain.SitePatch{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)

		missing, err := tx.Sites().Update(ctx, 999, domain.SitePatch{Name: &name})
		require.NoError(t, err)
		assert.Nil(t, missing)

		ok, err := tx.Sites().Delete(ctx, 999)
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	}))
}

func TestStore_RollbackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		require.NoError(t, tx.Projects().Create(ctx, &domain.Project{Name: "P"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_ = s.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		projects, err := tx.Projects().List(ctx)
		require.NoError(t, err)
		assert.Empty(t, projects)
		return nil
	})
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewStore().Do(ctx, func(context.Context, ports.Tx) error {
		t.Fatal("unit of work ran on a canceled context")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
