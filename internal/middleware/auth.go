package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glowbook/booking-api/internal/service/auth"
)

const (
	ContextCustomerID    = "customerID"
	ContextCustomerEmail = "customerEmail"
)

type AuthMiddleware struct {
	authService *auth.Service
}

func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate verifies the bearer token and sets customer info in context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid authorization format"})
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextCustomerID, claims.CustomerID)
		c.Set(ContextCustomerEmail, claims.Email)
		c.Next()
	}
}

// CustomerID extracts the authenticated customer id from the context.
func CustomerID(c *gin.Context) uuid.UUID {
	if id, ok := c.Get(ContextCustomerID); ok {
		if customerID, ok := id.(uuid.UUID); ok {
			return customerID
		}
	}
	return uuid.Nil
}
