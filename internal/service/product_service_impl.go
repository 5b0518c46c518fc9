package service

import (
	"context"
	"strings"

	"github.com/Blacksatth/Pagina-Web/internal/domain"
	"github.com/Blacksatth/Pagina-Web/internal/dto"
	"github.com/Blacksatth/Pagina-Web/internal/repository"
	"github.com/Blacksatth/Pagina-Web/pkg/errs"
	"github.com/rs/zerolog/log"
)

const (
	EventAddProduct    = "add_product"
	EventUpdateProduct = "update_product"
	EventDeleteProduct = "delete_product"
)

type ProductServiceImpl struct {
	repo      repository.ProductWriter
	publisher EventPublisher
}

func CreateProductService(repo repository.ProductWriter, publisher EventPublisher) ProductService {
	return &ProductServiceImpl{repo: repo, publisher: publisher}
}

func validateProductRequest(data *dto.ProductRequest) error {
	data.Name = strings.TrimSpace(data.Name)
	data.Category = strings.TrimSpace(data.Category)
	data.Image = strings.TrimSpace(data.Image)

	if data.Name == "" || data.Category == "" || data.Image == "" {
		return errs.ErrMissingProductFields
	}

	if data.Price <= 0 {
		return errs.ErrInvalidPrice
	}

	if data.Stock < 0 {
		return errs.ErrInvalidStock
	}

	if !data.OnSale {
		data.SalePrice = nil
		return nil
	}

	if data.SalePrice == nil || *data.SalePrice <= 0 || *data.SalePrice >= data.Price {
		return errs.ErrInvalidSalePrice
	}

	return nil
}

func productFromRequest(data dto.ProductRequest) domain.Product {
	product := domain.Product{
		ID:          data.ID,
		Name:        data.Name,
		Price:       data.Price,
		Category:    data.Category,
		Description: data.Description,
		Image:       data.Image,
		ExtraImages: []string{},
		Stock:       data.Stock,
		OnSale:      data.OnSale,
		SalePrice:   data.SalePrice,
	}

	for _, img := range data.ExtraImages {
		if img.URL == "" || img.URL == data.Image {
			continue
		}
		product.ExtraImages = append(product.ExtraImages, img.URL)
	}

	return product
}

func productEventPayload(p domain.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Description: p.Description,
		Image:       p.Image,
		ExtraImages: p.ExtraImages,
		Stock:       p.Stock,
		OnSale:      p.OnSale,
		SalePrice:   p.SalePrice,
	}
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, data dto.ProductRequest) (id string, err error) {
	if err = validateProductRequest(&data); err != nil {
		return
	}

	product := productFromRequest(data)
	assets := domain.ProductAssets{ImagePublicID: data.PublicID}
	for _, img := range data.ExtraImages {
		if img.URL == "" || img.URL == data.Image {
			continue
		}
		assets.ExtraImages = append(assets.ExtraImages, domain.ImageAsset{URL: img.URL, PublicID: img.PublicID})
	}

	id, err = s.repo.AddProduct(ctx, product, assets)
	if err != nil {
		return "", err
	}

	product.ID = id
	s.publish(ctx, EventAddProduct, dto.ProductEvent{ID: id, Product: productEventPayload(product)})

	return id, nil
}

// UpdateProduct replaces the product fields. Extra images are left as they
// are.
func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, data dto.ProductRequest) (err error) {
	if err = validateProductRequest(&data); err != nil {
		return
	}

	product := productFromRequest(data)
	if err = s.repo.UpdateProduct(ctx, product); err != nil {
		return
	}

	s.publish(ctx, EventUpdateProduct, dto.ProductEvent{ID: product.ID, Product: productEventPayload(product)})

	return nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	publicIDs, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return
	}

	s.publish(ctx, EventDeleteProduct, dto.ProductEvent{ID: id, PublicIDs: publicIDs})

	return nil
}

// publish failures are logged only, the write already happened.
func (s *ProductServiceImpl) publish(ctx context.Context, eventType string, event dto.ProductEvent) {
	if err := s.publisher.Publish(ctx, eventType, event.ID, event); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ProductService.publish").Str("event_type", eventType).Msg("")
	}
}
