package auth

import (
	"context"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
)

type ListUsers struct {
	uow ports.UnitOfWork
}

func NewListUsers(uow ports.UnitOfWork) *ListUsers {
	return &ListUsers{uow: uow}
}

func (uc *ListUsers) Execute(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	err := uc.uow.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		users, err = tx.Users().List(ctx)
		return err
	})
	return users, err
}

type UpdateUserRoleInput struct {
	UserID domain.UserID
	Role   domain.Role
}

type UpdateUserRole struct {
	uow ports.UnitOfWork
}

func NewUpdateUserRole(uow ports.UnitOfWork) *UpdateUserRole {
	return &UpdateUserRole{uow: uow}
}

// Execute validates the role before looking the user up, so an invalid role
// for a missing user is ErrInvalidRole.
func (uc *UpdateUserRole) Execute(ctx context.Context, input UpdateUserRoleInput) (*domain.User, error) {
	if !input.Role.Valid() {
		return nil, domerrors.ErrInvalidRole
	}
	var user *domain.User
	err := uc.uow.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		user, err = tx.Users().UpdateRole(ctx, input.UserID, input.Role)
		if err != nil {
			return err
		}
		if user == nil {
			return domerrors.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
