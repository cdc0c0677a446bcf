package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindMethodNotAllowed
	KindTimeout
	KindConflict
	KindUnprocessableEntity
	KindTooManyRequests
	KindUpgradeRequired
)

var kindStatus = map[Kind]int{
	KindInternal:            http.StatusInternalServerError,
	KindBadRequest:          http.StatusBadRequest,
	KindUnauthorized:        http.StatusUnauthorized,
	KindForbidden:           http.StatusForbidden,
	KindNotFound:            http.StatusNotFound,
	KindMethodNotAllowed:    http.StatusMethodNotAllowed,
	KindTimeout:             http.StatusRequestTimeout,
	KindConflict:            http.StatusConflict,
	KindUnprocessableEntity: http.StatusUnprocessableEntity,
	KindTooManyRequests:     http.StatusTooManyRequests,
	KindUpgradeRequired:     http.StatusUpgradeRequired,
}

func (k Kind) Status() int {
	if status, ok := kindStatus[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessage is the stable text rendered for a kind when no message is set.
func (k Kind) DefaultMessage() string {
	return http.StatusText(k.Status())
}

// AppError is the single error value rendered by the HTTP layer.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func New(kind Kind, message string, err error) *AppError {
	if message == "" {
		message = kind.DefaultMessage()
	}
	return &AppError{Kind: kind, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Status() int {
	return e.Kind.Status()
}

// PublicMessage never leaks internal detail for 5xx errors.
func (e *AppError) PublicMessage() string {
	if e.Status() >= http.StatusInternalServerError {
		return e.Kind.DefaultMessage()
	}
	return e.Message
}

func Internal(err error) *AppError {
	return New(KindInternal, "", err)
}

func InternalMessage(message string, err error) *AppError {
	return New(KindInternal, message, err)
}

func BadRequest(message string) *AppError {
	return New(KindBadRequest, message, nil)
}

func Unauthorized() *AppError {
	return New(KindUnauthorized, "", nil)
}

func Forbidden() *AppError {
	return New(KindForbidden, "", nil)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, message, nil)
}

func MethodNotAllowed() *AppError {
	return New(KindMethodNotAllowed, "", nil)
}

func Timeout() *AppError {
	return New(KindTimeout, "", nil)
}

func Conflict(message string) *AppError {
	return New(KindConflict, message, nil)
}

func UnprocessableEntity(message string) *AppError {
	return New(KindUnprocessableEntity, message, nil)
}

func TooManyRequests() *AppError {
	return New(KindTooManyRequests, "", nil)
}

func UpgradeRequired() *AppError {
	return New(KindUpgradeRequired, "", nil)
}

// Log records the error with its cause and returns it unchanged.
func Log(logger *logrus.Logger, err *AppError) *AppError {
	if logger == nil || err == nil {
		return err
	}
	entry := logger.WithFields(logrus.Fields{
		"code":    err.Status(),
		"message": err.Message,
	})
	if err.Err != nil {
		entry = entry.WithError(err.Err)
	}
	if err.Status() >= http.StatusInternalServerError {
		entry.Error("request failed")
		return err
	}
	entry.Debug("request rejected")
	return err
}

// From converts any error into an AppError, defaulting to InternalError.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
