package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jengzang/risk-heatmap-go/pkg/response"
)

// SubjectKey holds the authenticated subject in the gin context
const SubjectKey = "auth_subject"

// JWTAuth accepts HS256 bearer tokens signed with secret
func JWTAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			response.Unauthorized(c, "Token requerido")
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err != nil {
			msg := "Token no válido"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token expirado"
			}
			c.Error(fmt.Errorf("jwt: %w", err))
			response.Unauthorized(c, msg)
			return
		}

		if sub, err := token.Claims.GetSubject(); err == nil {
			c.Set(SubjectKey, sub)
		}
		c.Next()
	}
}
