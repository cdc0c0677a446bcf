package user

import (
	"time"

	"github.com/google/uuid"
)

// PasswordReset is the single active reset for a user.
type PasswordReset struct {
	UserID    uuid.UUID `json:"-" gorm:"type:uuid;primaryKey"`
	Token     uuid.UUID `json:"token" gorm:"type:uuid;uniqueIndex;not null"`
	ExpiredAt time.Time `json:"expired_at" gorm:"not null"`
}

func NewPasswordReset(userID uuid.UUID, expiration time.Duration, now time.Time) *PasswordReset {
	return &PasswordReset{
		UserID:    userID,
		Token:     uuid.New(),
		ExpiredAt: now.Add(expiration).UTC(),
	}
}

func (p PasswordReset) Expired(now time.Time) bool {
	return now.After(p.ExpiredAt)
}

func (p PasswordReset) TableName() string {
	return "password_resets"
}
