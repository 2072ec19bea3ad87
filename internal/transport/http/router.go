package httptransport

import (
	"log/slog"
	"time"

	"github.com/ErlanBelekov/bookstore-catalog/internal/transport/http/handler"
	"github.com/ErlanBelekov/bookstore-catalog/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

// APIPrefix is where the catalog API is mounted.
const APIPrefix = "/api/v1"

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	sellerHandler *handler.SellerHandler,
	bookHandler *handler.BookHandler,
	resolver middleware.CallerResolver,
	requestTimeout time.Duration,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.Timeout(requestTimeout))

	authMW := middleware.Auth(resolver, logger)

	api := r.Group(APIPrefix)

	api.POST("/token/", authHandler.Token)

	sellers := api.Group("/sellers")
	sellers.POST("/", sellerHandler.Register)
	sellers.GET("/", sellerHandler.List)
	sellers.GET("/:id", sellerHandler.GetByID)
	sellers.PUT("/:id", sellerHandler.Update)
	sellers.DELETE("/:id", sellerHandler.Delete)

	// Only book writes that carry an owner require a token.
	books := api.Group("/books")
	books.POST("/", authMW, bookHandler.Create)
	books.GET("/", bookHandler.List)
	books.GET("/:id", bookHandler.GetByID)
	books.PUT("/:id", authMW, bookHandler.Update)
	books.DELETE("/:id", bookHandler.Delete)

	return r
}
