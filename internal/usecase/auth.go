package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/bookstore-catalog/internal/credential"
	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
	"github.com/ErlanBelekov/bookstore-catalog/internal/metrics"
	"github.com/ErlanBelekov/bookstore-catalog/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

// AuthUsecase issues bearer tokens for sellers and resolves them back to a seller.
type AuthUsecase struct {
	sellers  repository.SellerRepository
	hasher   *credential.Hasher
	jwtKey   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewAuthUsecase builds the authenticator. A zero tokenTTL issues tokens
// without an exp claim, which never expire.
func NewAuthUsecase(sellers repository.SellerRepository, hasher *credential.Hasher, jwtKey []byte, tokenTTL time.Duration) *AuthUsecase {
	return &AuthUsecase{
		sellers:  sellers,
		hasher:   hasher,
		jwtKey:   jwtKey,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// IssueToken checks the credential of the seller registered under email and
// returns a signed HS256 token whose subject is that email.
// Unknown email and wrong credential both fail with domain.ErrUnauthorized.
func (u *AuthUsecase) IssueToken(ctx context.Context, email, password string) (string, error) {
	seller, err := u.sellers.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrSellerNotFound) {
		return "", fmt.Errorf("find seller: %w", err)
	}

	var hash string
	if seller != nil {
		hash = seller.PasswordHash
	}
	if !u.hasher.Matches(hash, password) {
		metrics.TokensIssuedTotal.WithLabelValues("rejected").Inc()
		return "", domain.ErrUnauthorized
	}

	now := u.now()
	claims := jwt.MapClaims{
		"sub": seller.Email,
		"iat": now.Unix(),
	}
	if u.tokenTTL > 0 {
		claims["exp"] = now.Add(u.tokenTTL).Unix()
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}

	metrics.TokensIssuedTotal.WithLabelValues("issued").Inc()
	return signed, nil
}

// ResolveCaller verifies rawToken and loads the seller named by its subject.
func (u *AuthUsecase) ResolveCaller(ctx context.Context, rawToken string) (*domain.Seller, error) {
	token, err := jwt.Parse(rawToken, func(*jwt.Token) (any, error) {
		return u.jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(u.now))
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	email, err := token.Claims.GetSubject()
	if err != nil || email == "" {
		return nil, domain.ErrUnauthorized
	}

	seller, err := u.sellers.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrSellerNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("find seller: %w", err)
	}
	return seller, nil
}
