package user

import (
	"context"
	"time"

	domain "github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=PasswordResetter --dir=. --output=./mocks --filename=password_resetter_mock.go --case=underscore
type PasswordResetter interface {
	// Request creates or replaces the reset of the user owning email.
	Request(ctx context.Context, email string) (*domain.PasswordReset, error)
	// Reset sets a new password for the user owning a live token and consumes the token.
	Reset(ctx context.Context, token uuid.UUID, password string) error
}

type passwordResetter struct {
	users      domain.Repository
	resets     domain.PasswordResetRepository
	expiration time.Duration
	now        func() time.Time
	logger     *logrus.Logger
}

func NewPasswordResetter(
	users domain.Repository,
	resets domain.PasswordResetRepository,
	expiration time.Duration,
	logger *logrus.Logger,
) PasswordResetter {
	return &passwordResetter{
		users:      users,
		resets:     resets,
		expiration: expiration,
		now:        time.Now,
		logger:     logger,
	}
}

func (p *passwordResetter) Request(ctx context.Context, email string) (*domain.PasswordReset, error) {
	entity, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	reset := domain.NewPasswordReset(entity.ID, p.expiration, p.now())
	if err := p.resets.Save(ctx, reset); err != nil {
		return nil, err
	}

	p.logger.WithField("user_id", entity.ID.String()).Info("password reset requested")
	return reset, nil
}

func (p *passwordResetter) Reset(ctx context.Context, token uuid.UUID, password string) error {
	if len(password) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}

	reset, err := p.resets.FindByToken(ctx, token)
	if err != nil {
		return err
	}

	entity, err := p.users.GetByID(ctx, reset.UserID)
	if err != nil {
		return err
	}

	hashed := domain.HashPassword(password)
	if hashed == entity.Password {
		return domain.ErrSamePassword
	}

	if err := p.users.UpdatePassword(ctx, entity.ID, hashed); err != nil {
		return err
	}
	if err := p.resets.DeleteByUserID(ctx, entity.ID); err != nil {
		p.logger.WithError(err).WithField("user_id", entity.ID.String()).Warn("failed to delete password reset")
	}
	return nil
}
