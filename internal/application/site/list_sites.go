package site

import (
	"context"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
)

type ListSites struct {
	uow ports.UnitOfWork
}

func NewListSites(uow ports.UnitOfWork) *ListSites {
	return &ListSites{uow: uow}
}

func (uc *ListSites) Execute(ctx context.Context) ([]*domain.Site, error) {
	var sites []*domain.Site
	err := uc.uow.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		sites, err = tx.Sites().List(ctx)
		return err
	})
	return sites, err
}
