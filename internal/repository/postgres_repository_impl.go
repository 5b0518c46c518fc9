package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/Blacksatth/Pagina-Web/internal/domain"
	"github.com/Blacksatth/Pagina-Web/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type productRow struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Price       float64         `db:"price"`
	Category    sql.NullString  `db:"category"`
	Description sql.NullString  `db:"description"`
	Image       string          `db:"image"`
	PublicID    sql.NullString  `db:"public_id"`
	Stock       int64           `db:"stock"`
	OnSale      bool            `db:"on_sale"`
	SalePrice   sql.NullFloat64 `db:"sale_price"`
}

type productImageRow struct {
	ProductID int64          `db:"product_id"`
	URL       string         `db:"url"`
	PublicID  sql.NullString `db:"public_id"`
}

type PostgresProductRepositoryImpl struct {
	db *sqlx.DB
}

func CreateNewPostgresRepository(db *sqlx.DB) PostgresProductRepository {
	return &PostgresProductRepositoryImpl{db: db}
}

func (r *PostgresProductRepositoryImpl) HandleTrx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = fn(tx)

	return err
}

func (r *PostgresProductRepositoryImpl) FetchCatalog(ctx context.Context) (domain.Catalog, error) {
	var products []productRow
	err := r.db.SelectContext(ctx, &products, "SELECT id, name, price, category, description, image, public_id, stock, on_sale, sale_price FROM products ORDER BY id")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "FetchCatalog").Msg("")
		return nil, fmt.Errorf("%w: %v", errs.ErrFetch, err)
	}

	var images []productImageRow
	err = r.db.SelectContext(ctx, &images, "SELECT product_id, url, public_id FROM product_images ORDER BY product_id, id")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "FetchCatalog").Msg("")
		return nil, fmt.Errorf("%w: %v", errs.ErrFetch, err)
	}

	return NormalizeRecords(ctx, productRowsToRecords(products, images)), nil
}

func productRowsToRecords(products []productRow, images []productImageRow) []ProductRecord {
	extras := make(map[int64][]interface{})
	for _, img := range images {
		extras[img.ProductID] = append(extras[img.ProductID], img.URL)
	}

	records := make([]ProductRecord, 0, len(products))
	for _, p := range products {
		record := ProductRecord{
			"id":          p.ID,
			"name":        p.Name,
			"price":       p.Price,
			"category":    p.Category.String,
			"description": p.Description.String,
			"image":       p.Image,
			"extraImages": extras[p.ID],
			"stock":       p.Stock,
			"onSale":      p.OnSale,
		}

		if p.SalePrice.Valid {
			record["salePrice"] = p.SalePrice.Float64
		}

		records = append(records, record)
	}

	return records
}

func (r *PostgresProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product, assets domain.ProductAssets) (id string, err error) {
	err = r.HandleTrx(ctx, func(tx *sqlx.Tx) error {
		row := productRow{
			Name:        data.Name,
			Price:       data.Price,
			Category:    sql.NullString{String: data.Category, Valid: data.Category != ""},
			Description: sql.NullString{String: data.Description, Valid: data.Description != ""},
			Image:       data.Image,
			PublicID:    sql.NullString{String: assets.ImagePublicID, Valid: assets.ImagePublicID != ""},
			Stock:       data.Stock,
			OnSale:      data.OnSale,
		}
		if data.SalePrice != nil {
			row.SalePrice = sql.NullFloat64{Float64: *data.SalePrice, Valid: true}
		}

		nstmt, err := tx.PrepareNamedContext(ctx, "INSERT INTO products(name, price, category, description, image, public_id, stock, on_sale, sale_price) VALUES (:name, :price, :category, :description, :image, :public_id, :stock, :on_sale, :sale_price) RETURNING id")
		if err != nil {
			return err
		}

		var productID int64
		if err = nstmt.GetContext(ctx, &productID, row); err != nil {
			return err
		}

		for _, img := range assets.ExtraImages {
			_, err = tx.NamedExecContext(ctx, "INSERT INTO product_images(product_id, url, public_id) VALUES (:product_id, :url, :public_id)", productImageRow{
				ProductID: productID,
				URL:       img.URL,
				PublicID:  sql.NullString{String: img.PublicID, Valid: img.PublicID != ""},
			})
			if err != nil {
				return err
			}
		}

		id = strconv.FormatInt(productID, 10)

		return nil
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return "", err
	}

	return id, nil
}

func (r *PostgresProductRepositoryImpl) UpdateProduct(ctx context.Context, data domain.Product) (err error) {
	productID, err := strconv.ParseInt(data.ID, 10, 64)
	if err != nil {
		return errs.ErrNotFound
	}

	var salePrice sql.NullFloat64
	if data.SalePrice != nil {
		salePrice = sql.NullFloat64{Float64: *data.SalePrice, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, "UPDATE products SET name=$1, price=$2, category=$3, description=$4, image=$5, stock=$6, on_sale=$7, sale_price=$8 WHERE id=$9",
		data.Name, data.Price, data.Category, data.Description, data.Image, data.Stock, data.OnSale, salePrice, productID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("Failed to update product")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return
	}

	if affected == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *PostgresProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (publicIDs []string, err error) {
	productID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, errs.ErrNotFound
	}

	err = r.HandleTrx(ctx, func(tx *sqlx.Tx) error {
		var main sql.NullString
		if err := tx.GetContext(ctx, &main, "SELECT public_id FROM products WHERE id = $1", productID); err != nil {
			if err == sql.ErrNoRows {
				return errs.ErrNotFound
			}
			return err
		}

		var extras []sql.NullString
		if err := tx.SelectContext(ctx, &extras, "SELECT public_id FROM product_images WHERE product_id = $1 ORDER BY id", productID); err != nil {
			return err
		}

		publicIDs = []string{}
		for _, pid := range append([]sql.NullString{main}, extras...) {
			if pid.Valid && pid.String != "" {
				publicIDs = append(publicIDs, pid.String)
			}
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM product_images WHERE product_id = $1", productID); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, "DELETE FROM products WHERE id = $1", productID)

		return err
	})
	if err != nil {
		if err != errs.ErrNotFound {
			log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		}
		return nil, err
	}

	return publicIDs, nil
}
