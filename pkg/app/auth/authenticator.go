package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
	"github.com/NeuralTrust/Gatekeeper/pkg/infra/auth/jwt"
	"github.com/sirupsen/logrus"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type LoginOutput struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

//go:generate mockery --name=Authenticator --dir=. --output=./mocks --filename=authenticator_mock.go --case=underscore
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*LoginOutput, error)
}

type authenticator struct {
	repo       domain.Repository
	jwtManager jwt.Manager
	logger     *logrus.Logger
}

func NewAuthenticator(repo domain.Repository, jwtManager jwt.Manager, logger *logrus.Logger) Authenticator {
	return &authenticator{
		repo:       repo,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

func (a *authenticator) Login(ctx context.Context, username, password string) (*LoginOutput, error) {
	entity, err := a.repo.FindByCredentials(ctx, username, domain.HashPassword(password))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		a.logger.WithError(err).Error("failed to find user by credentials")
		return nil, err
	}

	token, expiresAt, err := a.jwtManager.Issue(entity.ID.String(), entity.RolesString(), entity.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("error during JWT generation: %w", err)
	}

	return &LoginOutput{
		User:      entity,
		Token:     token,
		ExpiresAt: time.Unix(expiresAt, 0).UTC(),
	}, nil
}
