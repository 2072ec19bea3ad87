package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	errInternalServer  = "Internal server error"
	errBadCredentials  = "Incorrect username or password"
	errNotAuthorized   = "Could not validate credentials"
	errForbidden       = "Not enough permissions"
	errSellerNotFound  = "Seller not found"
	errBookNotFound    = "Book not found"
	errEmailTaken      = "Seller with this email already exists"
	errSellerHasBooks  = "Seller still owns books"
	errInvalidID       = "Path id must be a positive integer"
	errMissingIdentity = "Request is not authenticated"
)

// writeError maps domain errors to a status and a stable message. Anything
// unrecognised is logged and answered with 500.
func writeError(c *gin.Context, logger *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": errNotAuthorized})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": errForbidden})
	case errors.Is(err, domain.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errBookNotFound})
	case errors.Is(err, domain.ErrSellerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errSellerNotFound})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": errEmailTaken})
	case errors.Is(err, domain.ErrPasswordTooLong):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": domain.ErrPasswordTooLong.Error()})
	case errors.Is(err, domain.ErrSellerHasBooks):
		c.JSON(http.StatusConflict, gin.H{"error": errSellerHasBooks})
	default:
		logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}

func writeValidation(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}
