package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Blacksatth/Pagina-Web/pkg/errs"
	"github.com/Blacksatth/Pagina-Web/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier map[int64]bool

func (s stubVerifier) VerifyAdmin(ctx context.Context, userID int64) (bool, error) {
	isAdmin, ok := s[userID]
	if !ok {
		return false, errs.ErrAccountNotFound
	}

	return isAdmin, nil
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()
	g := e.Group("", IsLoggedIn("secret"), RequireAdmin(stubVerifier{1: true, 2: false}))
	g.GET("/admin", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	token := func(userID int64, role string) string {
		signed, err := utils.CreateJWTToken(userID, "n", role, "ext", "secret")
		require.NoError(t, err)
		return "Bearer " + signed
	}

	testCases := []struct {
		Name           string
		Authorization  string
		ExpectedStatus int
	}{
		{Name: "admin", Authorization: token(1, "admin"), ExpectedStatus: http.StatusOK},
		{Name: "demoted admin with old token", Authorization: token(2, "admin"), ExpectedStatus: http.StatusForbidden},
		{Name: "deleted account", Authorization: token(3, "admin"), ExpectedStatus: http.StatusNotFound},
		{Name: "no token", ExpectedStatus: http.StatusUnauthorized},
		{Name: "bad signature", Authorization: "Bearer abc.def.ghi", ExpectedStatus: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.Authorization != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.Authorization)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tc.ExpectedStatus, rec.Code)
		})
	}
}
