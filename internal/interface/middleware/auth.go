package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/streamvault/streamvault/pkg/apperror"
	"github.com/streamvault/streamvault/pkg/helpers"
)

const identityKey = "identity"

// Identity is the verified caller attached to the request context. Handlers
// read it through IdentityFrom instead of poking loose context keys.
type Identity struct {
	UserID   string
	Email    string
	UserName string
	FullName string
}

// IdentityFrom returns the authenticated identity, if any.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// tokenFromRequest reads the access token from the auth cookie first, then
// from a Bearer Authorization header.
func tokenFromRequest(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.AccessCookieName); err == nil && tok != "" {
		return tok
	}
	auth := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

func verify(c *gin.Context, jwt *helpers.JWTManager) (Identity, bool) {
	tok := tokenFromRequest(c)
	if tok == "" {
		return Identity{}, false
	}
	claims, err := jwt.ParseAccessToken(tok)
	if err != nil {
		return Identity{}, false
	}
	return Identity{
		UserID:   claims.UserID,
		Email:    claims.Email,
		UserName: claims.UserName,
		FullName: claims.FullName,
	}, true
}

// RequireAuth rejects the request with 401 unless a valid access token is
// presented. Missing and invalid tokens are indistinguishable to the client.
func RequireAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := verify(c, jwt)
		if !ok {
			_ = c.Error(apperror.Unauthorized("unauthorized request"))
			c.Abort()
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and lets
// the request through anonymously otherwise. Endpoints that personalize
// reads but serve everyone use this.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := verify(c, jwt); ok {
			c.Set(identityKey, id)
		}
		c.Next()
	}
}
