package auth

import (
	"context"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
)

type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by registration and login: a fresh session token and its owner.
type AuthResult struct {
	Token *ports.IssuedToken
	User  *domain.User
}

type RegisterUser struct {
	uow    ports.UnitOfWork
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewRegisterUser(uow ports.UnitOfWork, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *RegisterUser {
	return &RegisterUser{uow: uow, hasher: hasher, issuer: issuer}
}

// Execute creates a user with role "user" and signs them in.
func (uc *RegisterUser) Execute(ctx context.Context, input RegisterUserInput) (*AuthResult, error) {
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	err = uc.uow.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		existing, err := tx.Users().GetByEmail(ctx, input.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domerrors.ErrDuplicateEmail
		}
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	token, err := uc.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
