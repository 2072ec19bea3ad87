package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
	"github.com/ErlanBelekov/bookstore-catalog/internal/transport/http/middleware"
	"github.com/ErlanBelekov/bookstore-catalog/internal/usecase"
	"github.com/gin-gonic/gin"
)

type bookUsecaser interface {
	CreateBook(ctx context.Context, caller *domain.Seller, input usecase.BookInput) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	UpdateBook(ctx context.Context, caller *domain.Seller, id int64, input usecase.BookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

type BookHandler struct {
	books  bookUsecaser
	logger *slog.Logger
}

func NewBookHandler(books bookUsecaser, logger *slog.Logger) *BookHandler {
	return &BookHandler{books: books, logger: logger.With("component", "book_handler")}
}

// bookRequest limits mirror the books columns: VARCHAR(200), VARCHAR(100)
// and INTEGER. validator counts characters, as VARCHAR does.
type bookRequest struct {
	Title      string `json:"title"       binding:"required,max=200"`
	Author     string `json:"author"      binding:"required,max=100"`
	Year       int    `json:"year"        binding:"min=0,max=9999"`
	CountPages int    `json:"count_pages" binding:"min=0,max=2147483647"`
	SellerID   int64  `json:"seller_id"   binding:"required,min=1"`
}

type bookResponse struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Year       int    `json:"year"`
	CountPages int    `json:"count_pages"`
	SellerID   int64  `json:"seller_id"`
}

type listBooksResponse struct {
	Books []bookResponse `json:"books"`
}

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		Year:       b.Year,
		CountPages: b.CountPages,
		SellerID:   b.SellerID,
	}
}

// toBookResponses always returns a non-nil slice so JSON renders [].
func toBookResponses(books []*domain.Book) []bookResponse {
	out := make([]bookResponse, len(books))
	for i, b := range books {
		out[i] = toBookResponse(b)
	}
	return out
}

func (r bookRequest) input() usecase.BookInput {
	return usecase.BookInput{
		Title:      r.Title,
		Author:     r.Author,
		Year:       r.Year,
		CountPages: r.CountPages,
		SellerID:   r.SellerID,
	}
}

// POST /books/ (authenticated)
func (h *BookHandler) Create(ctx *gin.Context) {
	caller, ok := middleware.Caller(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": errMissingIdentity})
		return
	}

	var req bookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeValidation(ctx, err)
		return
	}

	book, err := h.books.CreateBook(ctx.Request.Context(), caller, req.input())
	if err != nil {
		writeError(ctx, h.logger, "create book", err)
		return
	}

	ctx.JSON(http.StatusCreated, toBookResponse(book))
}

// GET /books/
func (h *BookHandler) List(ctx *gin.Context) {
	books, err := h.books.ListBooks(ctx.Request.Context())
	if err != nil {
		writeError(ctx, h.logger, "list books", err)
		return
	}

	ctx.JSON(http.StatusOK, listBooksResponse{Books: toBookResponses(books)})
}

// GET /books/:id
func (h *BookHandler) GetByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	book, err := h.books.GetBook(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, h.logger, "get book", err)
		return
	}

	ctx.JSON(http.StatusOK, toBookResponse(book))
}

// PUT /books/:id (authenticated)
// 404 wins over 403: a missing book is reported before ownership is checked.
func (h *BookHandler) Update(ctx *gin.Context) {
	caller, ok := middleware.Caller(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": errMissingIdentity})
		return
	}

	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req bookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeValidation(ctx, err)
		return
	}

	book, err := h.books.UpdateBook(ctx.Request.Context(), caller, id, req.input())
	if err != nil {
		writeError(ctx, h.logger, "update book", err)
		return
	}

	ctx.JSON(http.StatusOK, toBookResponse(book))
}

// DELETE /books/:id
func (h *BookHandler) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := h.books.DeleteBook(ctx.Request.Context(), id); err != nil {
		writeError(ctx, h.logger, "delete book", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
