package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	cartSessionName   = "storefront_cart"
	cartSessionKey    = "cart_session_id"
	cartSessionMaxAge = 30 * 24 * 60 * 60
)

// CartSessionContextKey is where CartSession stores the id on the echo context.
const CartSessionContextKey = cartSessionKey

// CartSession gives every visitor a stable cart session id kept in a signed
// cookie. It must run after session.Middleware.
func CartSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get(cartSessionName, c)
		if sess == nil {
			return err
		}
		if err != nil {
			// a cookie signed with an old secret, start over
			log.Ctx(c.Request().Context()).Warn().Err(err).Str("component", "CartSession").Msg("")
		}

		id, ok := sess.Values[cartSessionKey].(string)
		if !ok || id == "" {
			id = uuid.New().String()
			sess.Values[cartSessionKey] = id
			sess.Options = &sessions.Options{
				Path:     "/",
				MaxAge:   cartSessionMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			}

			if err := sess.Save(c.Request(), c.Response()); err != nil {
				log.Ctx(c.Request().Context()).Error().Err(err).Str("component", "CartSession").Msg("")
				return err
			}
		}

		c.Set(CartSessionContextKey, id)

		return next(c)
	}
}

func CartSessionID(c echo.Context) string {
	id, _ := c.Get(CartSessionContextKey).(string)
	return id
}

func NewSessionStore(secret string) sessions.Store {
	return sessions.NewCookieStore([]byte(secret))
}
