// seed registers a demo seller with a couple of books in the configured store.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"

	"github.com/ErlanBelekov/bookstore-catalog/internal/bootstrap"
	"github.com/ErlanBelekov/bookstore-catalog/internal/credential"
	"github.com/ErlanBelekov/bookstore-catalog/internal/domain"
	"github.com/ErlanBelekov/bookstore-catalog/internal/email"
	"github.com/ErlanBelekov/bookstore-catalog/internal/usecase"
	"github.com/caarlos0/env/v11"
)

type seedConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	Password    string `env:"SEED_PASSWORD" envDefault:"pw"`
}

var demoSeller = usecase.RegisterSellerInput{
	FirstName: "Ivan",
	LastName:  "Popov",
	Email:     "popov@yandex.ru",
}

var demoBooks = []usecase.BookInput{
	{Title: "Eugeny Onegin", Author: "Pushkin", Year: 2001, CountPages: 104},
	{Title: "Ruslan and Ludmila", Author: "Pushkin", Year: 1998, CountPages: 96},
}

func main() {
	ctx := context.Background()

	var cfg seedConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := bootstrap.NewLogger("local", slog.LevelInfo)

	store, closeStore, err := bootstrap.OpenStore(ctx, bootstrap.StoreOptions{
		Kind:        bootstrap.StorePostgres,
		DatabaseURL: cfg.DatabaseURL,
		AutoMigrate: true,
	}, logger)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	hasher, err := credential.NewHasher(credential.DefaultCost)
	if err != nil {
		log.Fatalf("hasher: %v", err)
	}
	sellers := usecase.NewSellerUsecase(store, hasher, email.NewLogSender(logger), logger)
	books := usecase.NewBookUsecase(store)

	input := demoSeller
	input.Password = cfg.Password
	seller, err := sellers.RegisterSeller(ctx, input)
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		logger.Info("demo seller already present, nothing to do", "email", demoSeller.Email)
		return
	case err != nil:
		log.Fatalf("register seller: %v", err)
	}

	for _, b := range demoBooks {
		b.SellerID = seller.ID
		created, err := books.CreateBook(ctx, seller, b)
		if err != nil {
			log.Fatalf("create book %q: %v", b.Title, err)
		}
		logger.Info("book created", "id", created.ID, "title", created.Title)
	}

	logger.Info("seed complete", "seller_id", seller.ID, "email", seller.Email, "books", len(demoBooks))
}
