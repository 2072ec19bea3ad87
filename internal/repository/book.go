package repository

import (
	"context"

	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
)

type BookRepository interface {
	Create(ctx context.Context, b *domain.Book) (*domain.Book, error)
	GetByID(ctx context.Context, id int64) (*domain.Book, error)
	List(ctx context.Context) ([]*domain.Book, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]*domain.Book, error)
	Update(ctx context.Context, b *domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, id int64) error
	DeleteBySeller(ctx context.Context, sellerID int64) (int, error)
	Count(ctx context.Context) (int, error)
}
