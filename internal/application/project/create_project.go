package project

import (
	"context"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
)

type CreateProjectInput struct {
	Name        string
	Description string
	Actor       *domain.User
}

// CreateProject stores a new project attributed to the acting user.
type CreateProject struct {
	uow ports.UnitOfWork
}

func NewCreateProject(uow ports.UnitOfWork) *CreateProject {
	return &CreateProject{uow: uow}
}

func (uc *CreateProject) Execute(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	p := &domain.Project{
		Name:        input.Name,
		Description: input.Description,
	}
	if input.Actor != nil {
		id := input.Actor.ID
		p.CreatedByID, p.UpdatedByID = &id, &id
	}
	err := uc.uow.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		return tx.Projects().Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	p.CreatedBy, p.UpdatedBy = actorName(input.Actor), actorName(input.Actor)
	return p, nil
}

func actorName(u *domain.User) string {
	if u == nil {
		return "system"
	}
	return u.Name
}
