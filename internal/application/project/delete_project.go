package project

import (
	"context"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
)

// DeleteProject removes a project together with its sites.
type DeleteProject struct {
	uow ports.UnitOfWork
}

func NewDeleteProject(uow ports.UnitOfWork) *DeleteProject {
	return &DeleteProject{uow: uow}
}

// Execute returns the number of sites removed with the project.
func (uc *DeleteProject) Execute(ctx context.Context, id domain.ProjectID) (int, error) {
	var removed int
	err := uc.uow.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		sites, err := tx.Projects().SitesOf(ctx, id)
		if err != nil {
			return err
		}
		ok, err := tx.Projects().Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domerrors.ErrProjectNotFound
		}
		removed = len(sites)
		return nil
	})
	return removed, err
}
