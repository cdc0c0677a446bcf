package user

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=user_repository_mock.go --case=underscore
type Repository interface {
	FindByCredentials(ctx context.Context, username, hashedPassword string) (*User, error)
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, pagination Pagination) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
}

//go:generate mockery --name=PasswordResetRepository --dir=. --output=./mocks --filename=password_reset_repository_mock.go --case=underscore
type PasswordResetRepository interface {
	Save(ctx context.Context, reset *PasswordReset) error
	// FindByToken only returns resets that have not expired.
	FindByToken(ctx context.Context, token uuid.UUID) (*PasswordReset, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
