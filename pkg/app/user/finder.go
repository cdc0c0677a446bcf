package user

import (
	"context"

	domain "github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
	"github.com/google/uuid"
)

//go:generate mockery --name=Finder --dir=. --output=./mocks --filename=user_finder_mock.go --case=underscore
type Finder interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, pagination domain.Pagination) ([]domain.User, error)
}

type finder struct {
	repo domain.Repository
}

func NewFinder(repo domain.Repository) Finder {
	return &finder{repo: repo}
}

func (f *finder) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return f.repo.GetByID(ctx, id)
}

func (f *finder) List(ctx context.Context, pagination domain.Pagination) ([]domain.User, error) {
	users, err := f.repo.List(ctx, pagination)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}
