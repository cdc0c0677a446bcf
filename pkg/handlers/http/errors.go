package http

import (
	"errors"

	"github.com/NeuralTrust/Gatekeeper/pkg/app/auth"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
	"github.com/sirupsen/logrus"
)

const (
	ErrInvalidJsonPayload = "invalid JSON payload"
	ErrInvalidUserID      = "invalid user id"
	ErrInvalidResetToken  = "invalid password reset token"
)

var badRequestErrors = []error{
	user.ErrInvalidUsername,
	user.ErrPasswordTooShort,
	user.ErrInvalidRoles,
	user.ErrInvalidRateLimit,
	user.ErrLastnameRequired,
	user.ErrFirstnameRequired,
	user.ErrSamePassword,
}

// toAppError maps use case errors onto the HTTP error taxonomy and logs 5xx causes.
func toAppError(logger *logrus.Logger, err error) *apperrors.AppError {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return apperrors.BadRequest(target.Error())
		}
	}
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		return apperrors.NotFound(user.ErrUserNotFound.Error())
	case errors.Is(err, user.ErrPasswordResetNotFound):
		return apperrors.NotFound(user.ErrPasswordResetNotFound.Error())
	case errors.Is(err, user.ErrUsernameTaken):
		return apperrors.Conflict(user.ErrUsernameTaken.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return apperrors.Unauthorized()
	}
	return apperrors.Log(logger, apperrors.Internal(err))
}
