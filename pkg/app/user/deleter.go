package user

import (
	"context"

	domain "github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
	"github.com/google/uuid"
)

//go:generate mockery --name=Deleter --dir=. --output=./mocks --filename=user_deleter_mock.go --case=underscore
type Deleter interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

type deleter struct {
	repo domain.Repository
}

func NewDeleter(repo domain.Repository) Deleter {
	return &deleter{repo: repo}
}

func (d *deleter) Delete(ctx context.Context, id uuid.UUID) error {
	return d.repo.Delete(ctx, id)
}
