package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

const TokenTTL = time.Hour

func CreateJWTToken(userID int64, userName, role, externalID, jwtSecretKey string) (string, error) {
	claims := jwt.MapClaims{}
	claims["authorized"] = true
	claims["userID"] = userID
	claims["name"] = userName
	claims["role"] = role
	claims["externalID"] = externalID
	claims["exp"] = time.Now().Add(TokenTTL).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(jwtSecretKey))
}

// ExtractTokenUser reads the claims the JWT middleware stored under "user".
// A missing or invalid token yields zero values.
func ExtractTokenUser(c echo.Context) (int64, string, string) {
	user, ok := c.Get("user").(*jwt.Token)
	if !ok || !user.Valid {
		return 0, "", ""
	}

	claims, ok := user.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ""
	}

	userID, _ := claims["userID"].(float64)
	role, _ := claims["role"].(string)
	externalID, _ := claims["externalID"].(string)

	return int64(userID), role, externalID
}
