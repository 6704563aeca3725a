package project

import (
	"context"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
)

type UpdateProjectInput struct {
	ID    domain.ProjectID
	Patch domain.ProjectPatch
	Actor *domain.User
}

// UpdateProject applies a partial update. Attribution and updated_at change even
// when the patch is empty.
type UpdateProject struct {
	uow ports.UnitOfWork
}

func NewUpdateProject(uow ports.UnitOfWork) *UpdateProject {
	return &UpdateProject{uow: uow}
}

func (uc *UpdateProject) Execute(ctx context.Context, input UpdateProjectInput) (*domain.Project, error) {
	var p *domain.Project
	err := uc.uow.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		p, err = tx.Projects().GetByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if p == nil {
			return domerrors.ErrProjectNotFound
		}
		if input.Patch.Name != nil {
			p.Name = *input.Patch.Name
		}
		if input.Patch.Description != nil {
			p.Description = *input.Patch.Description
		}
		p.UpdatedByID = nil
		if input.Actor != nil {
			id := input.Actor.ID
			p.UpdatedByID = &id
		}
		return tx.Projects().Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	p.UpdatedBy = actorName(input.Actor)
	return p, nil
}
