package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	// SessionContextKey holds the cart session identity for the request.
	SessionContextKey = "session_id"
	// AuthTokenContextKey holds the raw bearer token, forwarded to the
	// backend for authenticated calls.
	AuthTokenContextKey = "auth_token"

	guestCookieName   = "guest_session"
	guestCookieMaxAge = 60 * 60 * 24 * 30
)

// SessionMiddleware resolves the shopper's cart session. A signed-in
// shopper presents a backend-issued JWT and the subject claim becomes the
// session identity, so the cart follows the account. Anonymous shoppers get
// a guest session pinned by cookie, so the cart works before login.
// secureCookies marks the guest cookie HTTPS-only and is on in production.
func SessionMiddleware(jwtSecret string, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			subject, err := parseSubject(token, jwtSecret)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
				return
			}
			c.Set(SessionContextKey, "user:"+subject)
			c.Set(AuthTokenContextKey, token)
			c.Next()
			return
		}

		guestID, err := c.Cookie(guestCookieName)
		if err != nil || guestID == "" {
			guestID = uuid.NewString()
			c.SetCookie(guestCookieName, guestID, guestCookieMaxAge, "/", "", secureCookies, true)
		}
		c.Set(SessionContextKey, "guest:"+guestID)
		c.Next()
	}
}

// RequireAuth refuses requests without a signed-in session; checkout
// submission and verification resend need a backend identity.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := GetAuthToken(c); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return h[7:]
}

func parseSubject(tokenString, secret string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}

// GetSessionID returns the resolved cart session for the request.
func GetSessionID(c *gin.Context) (string, error) {
	val, exists := c.Get(SessionContextKey)
	if !exists {
		return "", errors.New("session not found in context")
	}
	id, ok := val.(string)
	if !ok || id == "" {
		return "", errors.New("session has invalid type in context")
	}
	return id, nil
}

// GetAuthToken returns the raw bearer token for signed-in shoppers.
func GetAuthToken(c *gin.Context) (string, error) {
	val, exists := c.Get(AuthTokenContextKey)
	if !exists {
		return "", errors.New("no auth token in context")
	}
	token, ok := val.(string)
	if !ok || token == "" {
		return "", errors.New("auth token has invalid type in context")
	}
	return token, nil
}

// AuthTokenOrEmpty is the non-failing variant used where sign-in is
// optional.
func AuthTokenOrEmpty(c *gin.Context) string {
	token, err := GetAuthToken(c)
	if err != nil {
		return ""
	}
	return token
}
