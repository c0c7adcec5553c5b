package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amitEt25/aiven-auth-assigment/internal/common"
	"github.com/amitEt25/aiven-auth-assigment/internal/server/auth"
	"github.com/amitEt25/aiven-auth-assigment/internal/server/users"
)

// securityHeaders sets the standard browser hardening headers on every response.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// rateLimit throttles unauthenticated endpoints per client address.
func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{
				Message: "Too many authentication attempts",
				Code:    "too_many_requests",
			})
			return
		}
		c.Next()
	}
}

// authenticate validates the Bearer token and attaches the subject to the
// request context.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if header == "" || !strings.HasPrefix(header, common.BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{
				Message: "No token provided",
				Code:    "no_token",
			})
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, common.BearerPrefix), s.jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{
				Message: "Invalid token",
				Code:    "invalid_token",
			})
			return
		}

		identity := users.Identity{ID: claims.UserID, Email: claims.Email}
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}
