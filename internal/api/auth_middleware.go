package api

import (
	"net/http"
	"os"
	"time"

	"github.com/nasifowls01-ui/opb/internal/constants"
	"github.com/gin-gonic/gin"
)

// Context keys populated by AuthRequired for downstream handlers.
const (
	ctxUserEmail = "userEmail"
	ctxUserName  = "userName"
)

// setSessionCookie writes the opb_session cookie. The Secure flag follows
// SESSION_SECURE_COOKIE so local HTTP development still works.
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	secure := os.Getenv(constants.EnvSessionSecureCookie) == "1"
	c.SetCookie(constants.CookieSessionName, token, int(ttl.Seconds()), "/", "", secure, true)
}

// AuthRequired rejects requests without a valid session cookie and exposes
// the authenticated identity via the gin context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(constants.CookieSessionName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := verifySessionToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set(ctxUserEmail, claims.Sub)
		c.Set(ctxUserName, claims.Name)
		c.Next()
	}
}
