package project

import (
	"context"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	"github.com/Shama-Anpat/darukaa.earth/internal/infrastructure/geo"
)

// ListProjects returns every project with its sites and their total area.
type ListProjects struct {
	uow ports.UnitOfWork
}

func NewListProjects(uow ports.UnitOfWork) *ListProjects {
	return &ListProjects{uow: uow}
}

func (uc *ListProjects) Execute(ctx context.Context) ([]*domain.ProjectSummary, error) {
	var out []*domain.ProjectSummary
	err := uc.uow.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		projects, err := tx.Projects().List(ctx)
		if err != nil {
			return err
		}
		out = make([]*domain.ProjectSummary, 0, len(projects))
		for _, p := range projects {
			sites, err := tx.Projects().SitesOf(ctx, p.ID)
			if err != nil {
				return err
			}
			area, err := tx.Projects().TotalAreaKm2(ctx, p.ID)
			if err != nil {
				return err
			}
			out = append(out, &domain.ProjectSummary{
				Project:       *p,
				Sites:         sites,
				TotalAreaSqKm: geo.Round2(area),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
