package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
	ctxlog "github.com/ErlanBelekov/bookstore-catalog/internal/log"
	"github.com/gin-gonic/gin"
)

const (
	errUnauthorized = "Could not validate credentials"
	errInternal     = "Internal server error"

	callerKey = "caller"
)

// CallerResolver turns a raw bearer token into the seller it names.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, rawToken string) (*domain.Seller, error)
}

// Auth resolves the Bearer token to a seller and stores it in the gin context.
func Auth(resolver CallerResolver, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		rawToken := strings.TrimPrefix(header, "Bearer ")

		seller, err := resolver.ResolveCaller(c.Request.Context(), rawToken)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				abortUnauthorized(c)
				return
			}
			logger.ErrorContext(c.Request.Context(), "resolve caller", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errInternal})
			return
		}

		c.Set(callerKey, seller)
		c.Request = c.Request.WithContext(ctxlog.WithSellerID(c.Request.Context(), seller.ID))
		c.Next()
	}
}

// Caller returns the seller stored by Auth.
func Caller(c *gin.Context) (*domain.Seller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return nil, false
	}
	seller, ok := v.(*domain.Seller)
	return seller, ok
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
}
