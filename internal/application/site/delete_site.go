package site

import (
	"context"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
)

type DeleteSite struct {
	uow ports.UnitOfWork
}

func NewDeleteSite(uow ports.UnitOfWork) *DeleteSite {
	return &DeleteSite{uow: uow}
}

func (uc *DeleteSite) Execute(ctx context.Context, id domain.SiteID) error {
	return uc.uow.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		ok, err := tx.Sites().Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domerrors.ErrSiteNotFound
		}
		return nil
	})
}
