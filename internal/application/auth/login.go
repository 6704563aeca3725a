package auth

import (
	"context"
	"fmt"

	"github.com/Shama-Anpat/darukaa.earth/internal/application/ports"
	"github.com/Shama-Anpat/darukaa.earth/internal/domain"
	domerrors "github.com/Shama-Anpat/darukaa.earth/internal/domain/errors"
)

// AccountLockedError is returned while an email is cooling down after repeated failures.
type AccountLockedError struct {
	RetryAfterSeconds int
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("%s, retry after %ds", domerrors.ErrAccountLocked, e.RetryAfterSeconds)
}

func (e *AccountLockedError) Unwrap() error { return domerrors.ErrAccountLocked }

type LoginInput struct {
	Email    string
	Password string
}

type Login struct {
	uow     ports.UnitOfWork
	hasher  ports.PasswordHasher
	issuer  ports.TokenIssuer
	lockout ports.LoginLockoutStore
}

// NewLogin builds the use case. lockout may be nil to disable lockout.
func NewLogin(uow ports.UnitOfWork, hasher ports.PasswordHasher, issuer ports.TokenIssuer, lockout ports.LoginLockoutStore) *Login {
	return &Login{uow: uow, hasher: hasher, issuer: issuer, lockout: lockout}
}

// Execute checks the credentials. Unknown email and wrong password are indistinguishable.
func (uc *Login) Execute(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if uc.lockout != nil {
		if locked, retry := uc.lockout.IsLocked(ctx, input.Email); locked {
			return nil, &AccountLockedError{RetryAfterSeconds: retry}
		}
	}
	var user *domain.User
	err := uc.uow.Do(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		user, err = tx.Users().GetByEmail(ctx, input.Email)
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		if uc.lockout != nil {
			uc.lockout.RecordFailure(ctx, input.Email)
		}
		return nil, domerrors.ErrInvalidCredentials
	}
	if uc.lockout != nil {
		uc.lockout.RecordSuccess(ctx, input.Email)
	}
	token, err := uc.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
