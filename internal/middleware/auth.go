package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"linkcut/pkg/response"
)

// OwnerIDKey is the gin context key under which the verified principal
// identity is stored.
const OwnerIDKey = "ownerID"

// Identity verifies the bearer token issued by the auth service and
// injects its subject as the opaque owner id. Everything downstream
// treats the id as an opaque string; no claims beyond the subject are
// interpreted here.
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			unauthorized(c)
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			unauthorized(c)
			return
		}

		c.Set(OwnerIDKey, claims.Subject)
		c.Next()
	}
}

// OwnerID returns the verified principal identity for the request, or ""
// when the Identity middleware did not run.
func OwnerID(c *gin.Context) string {
	return c.GetString(OwnerIDKey)
}

func unauthorized(c *gin.Context) {
	response.Error(c, http.StatusUnauthorized, "invalid or missing credentials")
	c.Abort()
}
