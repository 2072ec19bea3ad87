package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// tokenIssuer is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type tokenIssuer interface {
	IssueToken(ctx context.Context, email, password string) (string, error)
}

type AuthHandler struct {
	issuer tokenIssuer
	logger *slog.Logger
}

func NewAuthHandler(issuer tokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		issuer: issuer,
		logger: logger.With("component", "auth_handler"),
	}
}

type tokenRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// POST /token/
// Form-encoded username (the seller email) and password. Unknown email and
// wrong password produce the same 401.
func (h *AuthHandler) Token(ctx *gin.Context) {
	var req tokenRequest
	if err := ctx.ShouldBindWith(&req, binding.Form); err != nil {
		writeValidation(ctx, err)
		return
	}

	token, err := h.issuer.IssueToken(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			ctx.Header("WWW-Authenticate", "Bearer")
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": errBadCredentials})
			return
		}
		h.logger.ErrorContext(ctx.Request.Context(), "issue token", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	ctx.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
