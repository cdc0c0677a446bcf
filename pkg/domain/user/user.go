package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// UnlimitedRate disables rate limiting for the user.
const UnlimitedRate int64 = -1

var (
	ErrUserNotFound          = errors.New("no user found")
	ErrUsernameTaken         = errors.New("username already taken")
	ErrInvalidUsername       = errors.New("username must be a valid email address")
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters")
	ErrInvalidRoles          = errors.New("roles contain unknown values")
	ErrInvalidRateLimit      = errors.New("rate_limit must be greater than or equal to -1")
	ErrLastnameRequired      = errors.New("lastname cannot be empty")
	ErrFirstnameRequired     = errors.New("firstname cannot be empty")
	ErrSamePassword          = errors.New("new password cannot be the same as the current one")
	ErrPasswordResetNotFound = errors.New("no password reset found")
)

type User struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Lastname  string         `json:"lastname" gorm:"not null"`
	Firstname string         `json:"firstname" gorm:"not null"`
	Username  string         `json:"username" gorm:"not null;uniqueIndex:idx_users_username,where:deleted_at IS NULL"`
	Password  string         `json:"-" gorm:"not null"`
	Roles     pq.StringArray `json:"-" gorm:"type:text[]"`
	RateLimit int64          `json:"rate_limit" gorm:"not null;default:-1"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Input carries the writable fields of a user; Password is plain text.
type Input struct {
	Lastname  string
	Firstname string
	Username  string
	Password  string
	Roles     string
	RateLimit *int64
}

func (in Input) Validate() error {
	if strings.TrimSpace(in.Lastname) == "" {
		return ErrLastnameRequired
	}
	if strings.TrimSpace(in.Firstname) == "" {
		return ErrFirstnameRequired
	}
	if !ValidEmail(in.Username) {
		return ErrInvalidUsername
	}
	if len(in.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(UnknownRoles(in.Roles)) > 0 {
		return ErrInvalidRoles
	}
	if in.RateLimit != nil && *in.RateLimit < UnlimitedRate {
		return ErrInvalidRateLimit
	}
	return nil
}

func NewUser(in Input) (*User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	u := &User{
		ID:        uuid.New(),
		RateLimit: UnlimitedRate,
	}
	u.apply(in)
	return u, nil
}

// Apply overwrites every writable field after validating the input.
func (u *User) Apply(in Input) error {
	if err := in.Validate(); err != nil {
		return err
	}
	u.apply(in)
	return nil
}

func (u *User) apply(in Input) {
	u.Lastname = strings.TrimSpace(in.Lastname)
	u.Firstname = strings.TrimSpace(in.Firstname)
	u.Username = strings.TrimSpace(in.Username)
	u.Password = HashPassword(in.Password)
	u.Roles = rolesToArray(ParseRoles(in.Roles))
	if in.RateLimit != nil {
		u.RateLimit = *in.RateLimit
	}
}

// RolesString renders roles the way they travel in tokens and responses.
func (u *User) RolesString() string {
	return strings.Join(u.Roles, ",")
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u User) TableName() string {
	return "users"
}

func ValidEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	return err == nil && addr.Address == value
}

func rolesToArray(roles []Role) pq.StringArray {
	out := make(pq.StringArray, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
