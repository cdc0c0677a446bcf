package user

import (
	"context"

	domain "github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Creator --dir=. --output=./mocks --filename=user_creator_mock.go --case=underscore
type Creator interface {
	Create(ctx context.Context, in domain.Input) (*domain.User, error)
}

type creator struct {
	repo   domain.Repository
	logger *logrus.Logger
}

func NewCreator(repo domain.Repository, logger *logrus.Logger) Creator {
	return &creator{
		repo:   repo,
		logger: logger,
	}
}

func (c *creator) Create(ctx context.Context, in domain.Input) (*domain.User, error) {
	entity, err := domain.NewUser(in)
	if err != nil {
		return nil, err
	}
	if err := c.repo.Create(ctx, entity); err != nil {
		c.logger.WithError(err).WithField("username", entity.Username).Warn("failed to create user")
		return nil, err
	}
	return entity, nil
}
