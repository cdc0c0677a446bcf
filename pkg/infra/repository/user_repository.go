package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) FindByCredentials(ctx context.Context, username, hashedPassword string) (*user.User, error) {
	entity := new(user.User)
	err := r.db.WithContext(ctx).
		Where("username = ? AND password = ?", username, hashedPassword).
		First(entity).Error
	if err != nil {
		return nil, translate(err)
	}
	return entity, nil
}

func (r *UserRepository) Create(ctx context.Context, entity *user.User) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	entity := new(user.User)
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(entity).Error; err != nil {
		return nil, translate(err)
	}
	return entity, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	entity := new(user.User)
	if err := r.db.WithContext(ctx).Where("username = ?", email).First(entity).Error; err != nil {
		return nil, translate(err)
	}
	return entity, nil
}

func (r *UserRepository) List(ctx context.Context, pagination user.Pagination) ([]user.User, error) {
	var users []user.User
	query := r.db.WithContext(ctx).Model(&user.User{})
	for _, s := range pagination.Sorts {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: s.Field}, Desc: s.Desc})
	}
	if len(pagination.Sorts) == 0 {
		query = query.Order("created_at ASC")
	}
	if err := query.Limit(pagination.Limit).Offset(pagination.Offset()).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, entity *user.User) error {
	result := r.db.WithContext(ctx).
		Model(entity).
		Select("lastname", "firstname", "username", "password", "roles", "rate_limit", "updated_at").
		Updates(entity)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Delete soft-deletes the user.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&user.User{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	result := r.db.WithContext(ctx).
		Model(&user.User{ID: id}).
		Update("password", hashedPassword)
	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return user.ErrUserNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return user.ErrUsernameTaken
	default:
		return err
	}
}
