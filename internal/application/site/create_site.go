package site

import (
	"context"
	"strings"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/geo"
)

type CreateSiteInput struct {
	ProjectID  domain.ProjectID
	Name       string
	PolygonWKT string
}

// Result is a written site and, when its polygon was part of the write, the
// polygon's area in km² rounded to two decimals.
type Result struct {
	Site    *domain.SiteRef
	AreaKm2 *float64
}

// CreateSite stores a polygon for an existing project.
type CreateSite struct {
	uow ports.UnitOfWork
}

func NewCreateSite(uow ports.UnitOfWork) *CreateSite {
	return &CreateSite{uow: uow}
}

func (uc *CreateSite) Execute(ctx context.Context, input CreateSiteInput) (*Result, error) {
	wkt := strings.TrimSpace(input.PolygonWKT)
	poly, err := geo.ParsePolygonWKT(wkt)
	if err != nil {
		return nil, err
	}
	var ref *domain.SiteRef
	err = uc.uow.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		p, err := tx.Projects().GetByID(ctx, input.ProjectID)
		if err != nil {
			return err
		}
		if p == nil {
			return domerrors.ErrProjectNotFound
		}
		ref, err = tx.Sites().Create(ctx, input.ProjectID, input.Name, wkt)
		return err
	})
	if err != nil {
		return nil, err
	}
	area := geo.Round2(geo.AreaKm2(poly))
	return &Result{Site: ref, AreaKm2: &area}, nil
}
