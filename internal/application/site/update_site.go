package site

import (
	"context"
	"strings"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/geo"
)

type UpdateSiteInput struct {
	ID    domain.SiteID
	Patch domain.SitePatch
}

// UpdateSite renames a site and/or replaces its polygon. An empty polygon_wkt
// leaves the stored polygon untouched.
type UpdateSite struct {
	uow ports.UnitOfWork
}

func NewUpdateSite(uow ports.UnitOfWork) *UpdateSite {
	return &UpdateSite{uow: uow}
}

func (uc *UpdateSite) Execute(ctx context.Context, input UpdateSiteInput) (*Result, error) {
	patch := domain.SitePatch{Name: input.Patch.Name}
	var area *float64
	if input.Patch.PolygonWKT != nil {
		if wkt := strings.TrimSpace(*input.Patch.PolygonWKT); wkt != "" {
			poly, err := geo.ParsePolygonWKT(wkt)
			if err != nil {
				return nil, err
			}
			a := geo.Round2(geo.AreaKm2(poly))
			patch.PolygonWKT, area = &wkt, &a
		}
	}
	var ref *domain.SiteRef
	err := uc.uow.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		ref, err = tx.Sites().Update(ctx, input.ID, patch)
		if err != nil {
			return err
		}
		if ref == nil {
			return domerrors.ErrSiteNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{Site: ref, AreaKm2: area}, nil
}
