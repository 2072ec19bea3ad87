package domain

import "errors"

var ErrBookNotFound = errors.New("book not found")

type Book struct {
	ID         int64
	Title      string
	Author     string
	Year       int
	CountPages int
	SellerID   int64
}
