package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NeuralTrust/Gatekeeper/pkg/app/auth"
	authMocks "github.com/NeuralTrust/Gatekeeper/pkg/app/auth/mocks"
	userMocks "github.com/NeuralTrust/Gatekeeper/pkg/app/user/mocks"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/apperrors"
	"github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
	"github.com/NeuralTrust/Gatekeeper/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestApp(method, path string, h Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperrors.FiberErrorHandler(newTestLogger())})
	app.Add(method, path, h.Handle)
	return app
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func send(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func assertErrorBody(t *testing.T, raw []byte, code int, message string) {
	t.Helper()
	var body apperrors.Body
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	assert.Equal(t, apperrors.Body{Code: code, Message: message}, body)
}

func sampleUser() *user.User {
	return &user.User{
		ID:        uuid.MustParse("8c6d54a3-53b3-4a0e-9c7b-7f07a6b0a3a1"),
		Lastname:  "Doe",
		Firstname: "Jane",
		Username:  "jane@example.com",
		Roles:     pq.StringArray{"ADMIN", "USER"},
		RateLimit: 30,
		CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestLoginHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		authenticator := authMocks.NewAuthenticator(t)
		u := sampleUser()
		authenticator.On("Login", mock.Anything, "jane@example.com", "password1").Return(&auth.LoginOutput{
			User:      u,
			Token:     "signed.jwt.token",
			ExpiresAt: time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
		}, nil)

		app := newTestApp(http.MethodPost, "/api/v1/login", NewLoginHandler(newTestLogger(), authenticator))
		resp, raw := send(t, app, jsonRequest(t, http.MethodPost, "/api/v1/login", map[string]string{
			"username": "jane@example.com",
			"password": "password1",
		}))

		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
		var body response.LoginResponse
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, response.LoginResponse{
			ID:        u.ID.String(),
			Lastname:  "Doe",
			Firstname: "Jane",
			Username:  "jane@example.com",
			Roles:     "ADMIN,USER",
			Token:     "signed.jwt.token",
			ExpiresAt: "2025-03-02T10:00:00Z",
		}, body)
	})

	t.Run("invalid payload", func(t *testing.T) {
		authenticator := authMocks.NewAuthenticator(t)
		app := newTestApp(http.MethodPost, "/api/v1/login", NewLoginHandler(newTestLogger(), authenticator))

		resp, raw := send(t, app, jsonRequest(t, http.MethodPost, "/api/v1/login", map[string]string{
			"username": "not-an-email",
			"password": "password1",
		}))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assertErrorBody(t, raw, 400, user.ErrInvalidUsername.Error())
	})

	t.Run("unknown credentials", func(t *testing.T) {
		authenticator := authMocks.NewAuthenticator(t)
		authenticator.On("Login", mock.Anything, "jane@example.com", "password1").Return(nil, auth.ErrInvalidCredentials)

		app := newTestApp(http.MethodPost, "/api/v1/login", NewLoginHandler(newTestLogger(), authenticator))
		resp, raw := send(t, app, jsonRequest(t, http.MethodPost, "/api/v1/login", map[string]string{
			"username": "jane@example.com",
			"password": "password1",
		}))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assertErrorBody(t, raw, 401, "Unauthorized")
	})

	t.Run("storage failure hides detail", func(t *testing.T) {
		authenticator := authMocks.NewAuthenticator(t)
		authenticator.On("Login", mock.Anything, "jane@example.com", "password1").Return(nil, errors.New("pq: connection reset"))

		app := newTestApp(http.MethodPost, "/api/v1/login", NewLoginHandler(newTestLogger(), authenticator))
		resp, raw := send(t, app, jsonRequest(t, http.MethodPost, "/api/v1/login", map[string]string{
			"username": "jane@example.com",
			"password": "password1",
		}))
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assertErrorBody(t, raw, 500, "Internal Server Error")
	})
}

func TestCreateUserHandler(t *testing.T) {
	limit := int64(30)
	payload := map[string]interface{}{
		"lastname":   "Doe",
		"firstname":  "Jane",
		"username":   "jane@example.com",
		"password":   "password1",
		"roles":      "USER,ADMIN",
		"rate_limit": limit,
	}

	t.Run("success", func(t *testing.T) {
		creator := userMocks.NewCreator(t)
		creator.On("Create", mock.Anything, user.Input{
			Lastname:  "Doe",
			Firstname: "Jane",
			Username:  "jane@example.com",
			Password:  "password1",
			Roles:     "USER,ADMIN",
			RateLimit: &limit,
		}).Return(sampleUser(), nil)

		app := newTestApp(http.MethodPost, "/api/v1/users", NewCreateUserHandler(newTestLogger(), creator))
		resp, raw := send(t, app, jsonRequest(t, http.MethodPost, "/api/v1/users", payload))

		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "ADMIN,USER", body["roles"])
		assert.Equal(t, "jane@example.com", body["username"])
		assert.NotContains(t, body, "password")
		assert.NotContains(t, body, "deleted_at")
	})

	t.Run("validation", func(t *testing.T) {
		creator := userMocks.NewCreator(t)
		app := newTestApp(http.MethodPost, "/api/v1/users", NewCreateUserHandler(newTestLogger(), creator))

		invalid := map[string]interface{}{
			"lastname":  "Doe",
			"firstname": "Jane",
			"username":  "jane@example.com",
			"password":  "password1",
			"roles":     "ROOT",
		}
		resp, raw := send(t, app, jsonRequest(t, http.MethodPost, "/api/v1/users", invalid))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assertErrorBody(t, raw, 400, user.ErrInvalidRoles.Error())
	})

	t.Run("malformed json", func(t *testing.T) {
		creator := userMocks.NewCreator(t)
		app := newTestApp(http.MethodPost, "/api/v1/users", NewCreateUserHandler(newTestLogger(), creator))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		resp, raw := send(t, app, req)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assertErrorBody(t, raw, 400, ErrInvalidJsonPayload)
	})

	t.Run("username taken", func(t *testing.T) {
		creator := userMocks.NewCreator(t)
		creator.On("Create", mock.Anything, mock.Anything).Return(nil, user.ErrUsernameTaken)

		app := newTestApp(http.MethodPost, "/api/v1/users", NewCreateUserHandler(newTestLogger(), creator))
		resp, raw := send(t, app, jsonRequest(t, http.MethodPost, "/api/v1/users", payload))
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assertErrorBody(t, raw, 409, user.ErrUsernameTaken.Error())
	})
}

func TestListUsersHandler(t *testing.T) {
	t.Run("paginated", func(t *testing.T) {
		finder := userMocks.NewFinder(t)
		finder.On("List", mock.Anything, user.Pagination{
			Page:  2,
			Limit: 10,
			Sorts: []user.Sort{{Field: "lastname", Desc: true}},
		}).Return([]user.User{*sampleUser()}, nil)

		app := newTestApp(http.MethodGet, "/api/v1/users", NewListUsersHandler(newTestLogger(), finder))
		resp, raw := send(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/users?page=2&limit=10&sort=-lastname", nil))

		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
		var body []response.UserResponse
		require.NoError(t, json.Unmarshal(raw, &body))
		require.Len(t, body, 1)
		assert.Equal(t, "Doe", body[0].Lastname)
	})

	t.Run("empty list renders array", func(t *testing.T) {
		finder := userMocks.NewFinder(t)
		finder.On("List", mock.Anything, user.Pagination{Page: 1, Limit: 500}).Return([]user.User{}, nil)

		app := newTestApp(http.MethodGet, "/api/v1/users", NewListUsersHandler(newTestLogger(), finder))
		resp, raw := send(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, "[]", string(raw))
	})

	t.Run("invalid sort", func(t *testing.T) {
		finder := userMocks.NewFinder(t)
		app := newTestApp(http.MethodGet, "/api/v1/users", NewListUsersHandler(newTestLogger(), finder))
		resp, _ := send(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/users?sort=password", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetUserHandler(t *testing.T) {
	u := sampleUser()

	finder := userMocks.NewFinder(t)
	finder.On("Get", mock.Anything, u.ID).Return(u, nil).Once()
	missing := uuid.New()
	finder.On("Get", mock.Anything, missing).Return(nil, user.ErrUserNotFound).Once()

	app := newTestApp(http.MethodGet, "/api/v1/users/:id", NewGetUserHandler(newTestLogger(), finder))

	resp, raw := send(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/users/"+u.ID.String(), nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body response.UserResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, u.ID.String(), body.ID)
	assert.Equal(t, int64(30), body.RateLimit)

	resp, raw = send(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/users/"+missing.String(), nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assertErrorBody(t, raw, 404, "no user found")

	resp, raw = send(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/users/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assertErrorBody(t, raw, 400, ErrInvalidUserID)
}

func TestUpdateUserHandler(t *testing.T) {
	u := sampleUser()
	updater := userMocks.NewUpdater(t)
	updater.On("Update", mock.Anything, u.ID, mock.MatchedBy(func(in user.Input) bool {
		return in.Lastname == "Smith" && in.RateLimit == nil
	})).Return(u, nil)

	app := newTestApp(http.MethodPut, "/api/v1/users/:id", NewUpdateUserHandler(newTestLogger(), updater))
	resp, raw := send(t, app, jsonRequest(t, http.MethodPut, "/api/v1/users/"+u.ID.String(), map[string]string{
		"lastname":  "Smith",
		"firstname": "Jane",
		"username":  "jane@example.com",
		"password":  "password1",
	}))
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	resp, raw = send(t, app, jsonRequest(t, http.MethodPut, "/api/v1/users/"+u.ID.String(), map[string]string{
		"lastname":  "Smith",
		"firstname": "Jane",
		"username":  "jane@example.com",
		"password":  "short",
	}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assertErrorBody(t, raw, 400, user.ErrPasswordTooShort.Error())
}

func TestDeleteUserHandler(t *testing.T) {
	id := uuid.New()
	deleter := userMocks.NewDeleter(t)
	deleter.On("Delete", mock.Anything, id).Return(nil).Once()
	deleter.On("Delete", mock.Anything, id).Return(user.ErrUserNotFound).Once()

	app := newTestApp(http.MethodDelete, "/api/v1/users/:id", NewDeleteUserHandler(newTestLogger(), deleter))

	resp, _ := send(t, app, httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+id.String(), nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, raw := send(t, app, httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+id.String(), nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assertErrorBody(t, raw, 404, "no user found")
}

func TestForgottenPasswordHandler(t *testing.T) {
	reset := &user.PasswordReset{
		UserID:    uuid.New(),
		Token:     uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e"),
		ExpiredAt: time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC),
	}
	resetter := userMocks.NewPasswordResetter(t)
	resetter.On("Request", mock.Anything, "jane@example.com").Return(reset, nil).Once()
	resetter.On("Request", mock.Anything, "ghost@example.com").Return(nil, user.ErrUserNotFound).Once()

	app := newTestApp(http.MethodPost, "/api/v1/forgotten-password/:email", NewForgottenPasswordHandler(newTestLogger(), resetter))

	resp, raw := send(t, app, httptest.NewRequest(http.MethodPost, "/api/v1/forgotten-password/jane@example.com", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.JSONEq(t, `{"token":"0f8fad5b-d9cb-469f-a165-70867728950e","expired_at":"2025-03-01T11:00:00Z"}`, string(raw))

	resp, raw = send(t, app, httptest.NewRequest(http.MethodPost, "/api/v1/forgotten-password/ghost@example.com", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assertErrorBody(t, raw, 404, "no user found")

	resp, _ = send(t, app, httptest.NewRequest(http.MethodPost, "/api/v1/forgotten-password/nobody", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdatePasswordHandler(t *testing.T) {
	token := uuid.New()
	resetter := userMocks.NewPasswordResetter(t)
	resetter.On("Reset", mock.Anything, token, "new-password").Return(nil).Once()
	resetter.On("Reset", mock.Anything, token, "old-password").Return(user.ErrSamePassword).Once()
	resetter.On("Reset", mock.Anything, token, "any-password").Return(user.ErrPasswordResetNotFound).Once()

	app := newTestApp(http.MethodPatch, "/api/v1/update-password/:token", NewUpdatePasswordHandler(newTestLogger(), resetter))
	target := "/api/v1/update-password/" + token.String()

	resp, _ := send(t, app, jsonRequest(t, http.MethodPatch, target, map[string]string{"password": "new-password"}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := send(t, app, jsonRequest(t, http.MethodPatch, target, map[string]string{"password": "old-password"}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assertErrorBody(t, raw, 400, user.ErrSamePassword.Error())

	resp, raw = send(t, app, jsonRequest(t, http.MethodPatch, target, map[string]string{"password": "any-password"}))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assertErrorBody(t, raw, 404, user.ErrPasswordResetNotFound.Error())

	resp, _ = send(t, app, jsonRequest(t, http.MethodPatch, target, map[string]string{"password": "short"}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = send(t, app, jsonRequest(t, http.MethodPatch, "/api/v1/update-password/nope", map[string]string{"password": "new-password"}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndVersionHandlers(t *testing.T) {
	app := fiber.New()
	app.Get("/health", NewHealthHandler().Handle)
	app.Get("/version", NewGetVersionHandler(newTestLogger()).Handle)

	resp, raw := send(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(raw))

	resp, raw = send(t, app, httptest.NewRequest(http.MethodGet, "/version", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"app_name":"Gatekeeper"`)
}
