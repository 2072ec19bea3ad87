package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
	"github.com/ErlanBelekov/bookstore-catalog/internal/usecase"
	"github.com/gin-gonic/gin"
)

type sellerUsecaser interface {
	RegisterSeller(ctx context.Context, input usecase.RegisterSellerInput) (*domain.Seller, error)
	ListSellers(ctx context.Context) ([]*domain.SellerWithBooks, error)
	GetSeller(ctx context.Context, id int64) (*domain.SellerWithBooks, error)
	UpdateSellerProfile(ctx context.Context, id int64, p domain.SellerProfile) (*domain.Seller, error)
	DeleteSeller(ctx context.Context, id int64) error
}

type SellerHandler struct {
	sellers sellerUsecaser
	logger  *slog.Logger
}

func NewSellerHandler(sellers sellerUsecaser, logger *slog.Logger) *SellerHandler {
	return &SellerHandler{sellers: sellers, logger: logger.With("component", "seller_handler")}
}

type registerSellerRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name"  binding:"required,max=50"`
	Email     string `json:"email"      binding:"required,email,max=100"`
	Password  string `json:"password"   binding:"required"`
}

type updateSellerRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name"  binding:"required,max=50"`
	Email     string `json:"email"      binding:"required,email,max=100"`
}

// sellerResponse never carries the credential.
type sellerResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type sellerWithBooksResponse struct {
	sellerResponse
	Books []bookResponse `json:"books"`
}

type listSellersResponse struct {
	Sellers []sellerWithBooksResponse `json:"sellers"`
}

func toSellerResponse(s *domain.Seller) sellerResponse {
	return sellerResponse{
		ID:        s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
	}
}

func toSellerWithBooksResponse(sb *domain.SellerWithBooks) sellerWithBooksResponse {
	return sellerWithBooksResponse{
		sellerResponse: toSellerResponse(sb.Seller),
		Books:          toBookResponses(sb.Books),
	}
}

// POST /sellers/
func (h *SellerHandler) Register(ctx *gin.Context) {
	var req registerSellerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeValidation(ctx, err)
		return
	}

	seller, err := h.sellers.RegisterSeller(ctx.Request.Context(), usecase.RegisterSellerInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeError(ctx, h.logger, "register seller", err)
		return
	}

	ctx.JSON(http.StatusCreated, toSellerResponse(seller))
}

// GET /sellers/
func (h *SellerHandler) List(ctx *gin.Context) {
	sellers, err := h.sellers.ListSellers(ctx.Request.Context())
	if err != nil {
		writeError(ctx, h.logger, "list sellers", err)
		return
	}

	items := make([]sellerWithBooksResponse, len(sellers))
	for i, s := range sellers {
		items[i] = toSellerWithBooksResponse(s)
	}
	ctx.JSON(http.StatusOK, listSellersResponse{Sellers: items})
}

// GET /sellers/:id
func (h *SellerHandler) GetByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	seller, err := h.sellers.GetSeller(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, h.logger, "get seller", err)
		return
	}

	ctx.JSON(http.StatusOK, toSellerWithBooksResponse(seller))
}

// PUT /sellers/:id
func (h *SellerHandler) Update(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req updateSellerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeValidation(ctx, err)
		return
	}

	seller, err := h.sellers.UpdateSellerProfile(ctx.Request.Context(), id, domain.SellerProfile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		writeError(ctx, h.logger, "update seller", err)
		return
	}

	ctx.JSON(http.StatusOK, toSellerResponse(seller))
}

// DELETE /sellers/:id
// Removes the seller's books along with it. Always 204 unless the store fails.
func (h *SellerHandler) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := h.sellers.DeleteSeller(ctx.Request.Context(), id); err != nil {
		writeError(ctx, h.logger, "delete seller", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
