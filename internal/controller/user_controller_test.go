package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Blacksatth/Pagina-Web/internal/domain"
	"github.com/Blacksatth/Pagina-Web/internal/dto"
	"github.com/Blacksatth/Pagina-Web/internal/middleware"
	"github.com/Blacksatth/Pagina-Web/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUserRepository struct {
	users []domain.User
}

func (r *memoryUserRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}

	return domain.User{}, nil
}

func (r *memoryUserRepository) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}

	return domain.User{}, nil
}

func (r *memoryUserRepository) AddUser(ctx context.Context, data domain.User) (int64, error) {
	data.ID = int64(len(r.users) + 1)
	r.users = append(r.users, data)

	return data.ID, nil
}

func TestUserControllerCurrentUser(t *testing.T) {
	e := echo.New()
	g := e.Group("/api/v1")
	CreateUserController(g, service.CreateUserService(&memoryUserRepository{}, "secret"), middleware.IsLoggedIn("secret"))

	send := func(method, path, authorization string, body interface{}) *httptest.ResponseRecorder {
		raw, err := json.Marshal(body)
		require.NoError(t, err)

		req := httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		if authorization != "" {
			req.Header.Set(echo.HeaderAuthorization, authorization)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		return rec
	}

	rec := send(http.MethodPost, "/api/v1/users/register", "", dto.UserRequest{Name: "Ana", Email: "ana@example.com", Password: "123456"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = send(http.MethodPost, "/api/v1/users/login", "", dto.UserRequest{Email: "ana@example.com", Password: "123456"})
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Data dto.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	rec = send(http.MethodGet, "/api/v1/users/me", "Bearer "+login.Data.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Data dto.UserResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, int64(1), me.Data.ID)
	assert.Equal(t, "Ana", me.Data.Name)
	assert.Equal(t, "ana@example.com", me.Data.Email)
	assert.Equal(t, domain.RoleUser, me.Data.Role)
	assert.NotEmpty(t, me.Data.ExternalID)

	rec = send(http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
