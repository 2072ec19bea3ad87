package domain

import "errors"

var (
	ErrSellerNotFound = errors.New("seller not found")
	ErrEmailTaken     = errors.New("seller with this email already exists")
	ErrSellerHasBooks = errors.New("seller still owns books")

	// ErrPasswordTooLong is a validation failure, not a store error.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)

type Seller struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string

	// PasswordHash never leaves the service layer; transport types omit it.
	PasswordHash string
}

// SellerProfile is the mutable part of a Seller.
type SellerProfile struct {
	FirstName string
	LastName  string
	Email     string
}

type SellerWithBooks struct {
	Seller *Seller
	Books  []*Book
}
