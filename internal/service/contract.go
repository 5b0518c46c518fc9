package service

import (
	"context"

	"github.com/Blacksatth/Pagina-Web/internal/dto"
	pkgdto "github.com/Blacksatth/Pagina-Web/pkg/dto"
)

type CatalogService interface {
	GetCatalog(ctx context.Context, filter pkgdto.Filter) (resp dto.CatalogResponse, err error)
	GetProductDetail(ctx context.Context, id string, imageIndex int) (resp dto.ProductDetailResponse, err error)
}

type CartService interface {
	GetCart(ctx context.Context, sessionID string) (resp dto.CartResponse, err error)
	AddItem(ctx context.Context, sessionID, productID string) (resp dto.CartResponse, err error)
	IncreaseItem(ctx context.Context, sessionID, productID string) (resp dto.CartResponse, err error)
	DecreaseItem(ctx context.Context, sessionID, productID string) (resp dto.CartResponse, err error)
	RemoveItem(ctx context.Context, sessionID, productID string) (resp dto.CartResponse, err error)
	ClearCart(ctx context.Context, sessionID string) (resp dto.CartResponse, err error)
	EndSession(sessionID string)
	PurgeIdleCarts(ctx context.Context) (purged int, err error)
}

type ProductService interface {
	AddProduct(ctx context.Context, data dto.ProductRequest) (id string, err error)
	UpdateProduct(ctx context.Context, data dto.ProductRequest) (err error)
	DeleteProduct(ctx context.Context, id string) (err error)
}

type UserService interface {
	Register(ctx context.Context, data dto.UserRequest) (err error)
	Login(ctx context.Context, data dto.UserRequest) (resp dto.LoginResponse, err error)
	VerifyAdmin(ctx context.Context, userID int64) (isAdmin bool, err error)
	GetUser(ctx context.Context, userID int64) (resp dto.UserResponse, err error)
}

// EventPublisher delivers product events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, data interface{}) error
}
