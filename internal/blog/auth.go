package blog

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenCookieName is the single session cookie the blog app uses.
const TokenCookieName = "token"

const identityKey = "blog_identity"

// Identity is the signed-in blog reader, decoded from the token cookie.
type Identity struct {
	UserID          string
	Email           string
	FullName        string
	ProfileImageURL string
	Role            string
}

type tokenClaims struct {
	Email           string `json:"email"`
	FullName        string `json:"fullname"`
	ProfileImageURL string `json:"avatar"`
	Role            string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies the blog session token.
type TokenManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{Secret: []byte(secret), TTL: ttl}
}

func (m *TokenManager) Sign(u *User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Email:           u.Email,
		FullName:        u.FullName,
		ProfileImageURL: u.ProfileImageURL,
		Role:            u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
}

func (m *TokenManager) Verify(token string) (Identity, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, errors.New("invalid token")
	}
	return Identity{
		UserID:          claims.Subject,
		Email:           claims.Email,
		FullName:        claims.FullName,
		ProfileImageURL: claims.ProfileImageURL,
		Role:            claims.Role,
	}, nil
}

// SessionAuth decodes the token cookie when present and always lets the
// request through. Pages decide for themselves what anonymous users see.
func SessionAuth(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie(TokenCookieName)
		if err == nil && tok != "" {
			if id, verr := tm.Verify(tok); verr == nil {
				c.Set(identityKey, id)
			}
		}
		c.Next()
	}
}

// RequireSession redirects anonymous visitors to the sign-in page.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := IdentityFrom(c); !ok {
			c.Redirect(302, "/user/signin")
			c.Abort()
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
