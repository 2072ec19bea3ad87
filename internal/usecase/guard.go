package usecase

import "github.com/ErlanBelekov/bookstore-catalog/internal/domain"

// AuthorizeOwnerWrite allows a mutation only when caller owns the resource.
func AuthorizeOwnerWrite(caller *domain.Seller, resourceOwnerID int64) error {
	if caller == nil || caller.ID != resourceOwnerID {
		return domain.ErrForbidden
	}
	return nil
}
