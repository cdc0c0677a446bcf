package user

import (
	"context"

	domain "github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Updater --dir=. --output=./mocks --filename=user_updater_mock.go --case=underscore
type Updater interface {
	Update(ctx context.Context, id uuid.UUID, in domain.Input) (*domain.User, error)
}

type updater struct {
	repo   domain.Repository
	logger *logrus.Logger
}

func NewUpdater(repo domain.Repository, logger *logrus.Logger) Updater {
	return &updater{
		repo:   repo,
		logger: logger,
	}
}

func (u *updater) Update(ctx context.Context, id uuid.UUID, in domain.Input) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	entity, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := entity.Apply(in); err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, entity); err != nil {
		u.logger.WithError(err).WithField("user_id", id.String()).Warn("failed to update user")
		return nil, err
	}
	return entity, nil
}
