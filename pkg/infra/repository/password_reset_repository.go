package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PasswordResetRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPasswordResetRepository(db *gorm.DB) user.PasswordResetRepository {
	return &PasswordResetRepository{
		db:  db,
		now: time.Now,
	}
}

// Save inserts the reset or replaces the token and expiry of the user's existing one.
func (r *PasswordResetRepository) Save(ctx context.Context, reset *user.PasswordReset) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "expired_at"}),
	}).Create(reset).Error
	if err != nil {
		return fmt.Errorf("failed to save password reset: %w", err)
	}
	return nil
}

func (r *PasswordResetRepository) FindByToken(ctx context.Context, token uuid.UUID) (*user.PasswordReset, error) {
	entity := new(user.PasswordReset)
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN users u ON u.id = password_resets.user_id AND u.deleted_at IS NULL").
		Where("password_resets.token = ? AND password_resets.expired_at >= ?", token, r.now().UTC()).
		First(entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrPasswordResetNotFound
		}
		return nil, fmt.Errorf("failed to find password reset: %w", err)
	}
	return entity, nil
}

func (r *PasswordResetRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&user.PasswordReset{}).Error; err != nil {
		return fmt.Errorf("failed to delete password reset: %w", err)
	}
	return nil
}
