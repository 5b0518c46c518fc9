package middleware

import (
	"context"

	"github.com/Blacksatth/Pagina-Web/pkg/errs"
	"github.com/Blacksatth/Pagina-Web/pkg/response"
	"github.com/Blacksatth/Pagina-Web/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AdminVerifier is satisfied by service.UserService.
type AdminVerifier interface {
	VerifyAdmin(ctx context.Context, userID int64) (bool, error)
}

func IsLoggedIn(jwtSecret string) echo.MiddlewareFunc {
	return middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey: []byte(jwtSecret),
		ErrorHandlerWithContext: func(err error, c echo.Context) error {
			return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
		},
	})
}

// RequireAdmin checks the stored role of the token holder on every request.
func RequireAdmin(verifier AdminVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _, _ := utils.ExtractTokenUser(c)
			if userID == 0 {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			isAdmin, err := verifier.VerifyAdmin(c.Request().Context(), userID)
			if err != nil {
				return response.WriteErrorResponse(c, err, nil)
			}

			if !isAdmin {
				return response.WriteErrorResponse(c, errs.ErrNotAdmin, nil)
			}

			return next(c)
		}
	}
}
