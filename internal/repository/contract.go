package repository

import (
	"context"
	"time"

	"github.com/Blacksatth/Pagina-Web/internal/domain"
	"github.com/jmoiron/sqlx"
)

type CatalogRepository interface {
	FetchCatalog(ctx context.Context) (domain.Catalog, error)
}

type ProductWriter interface {
	AddProduct(ctx context.Context, data domain.Product, assets domain.ProductAssets) (id string, err error)
	UpdateProduct(ctx context.Context, data domain.Product) (err error)
	// DeleteProduct returns the image host public ids of the removed product.
	DeleteProduct(ctx context.Context, id string) (publicIDs []string, err error)
}

type ProductRepository interface {
	CatalogRepository
	ProductWriter
}

// CartStorage is a key-value store for serialized carts. Get returns a nil
// slice and no error for unknown keys.
type CartStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	PurgeIdle(ctx context.Context, before time.Time) (keys []string, err error)
}

type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (res domain.User, err error)
	GetUserByID(ctx context.Context, id int64) (res domain.User, err error)
	AddUser(ctx context.Context, data domain.User) (id int64, err error)
}

type PostgresProductRepository interface {
	ProductRepository
	HandleTrx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}
