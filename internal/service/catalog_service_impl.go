package service

import (
	"context"

	"github.com/Blacksatth/Pagina-Web/config"
	"github.com/Blacksatth/Pagina-Web/internal/domain"
	"github.com/Blacksatth/Pagina-Web/internal/dto"
	"github.com/Blacksatth/Pagina-Web/internal/repository"
	pkgdto "github.com/Blacksatth/Pagina-Web/pkg/dto"
	"github.com/Blacksatth/Pagina-Web/pkg/errs"
	"github.com/Blacksatth/Pagina-Web/pkg/utils"
)

type CatalogServiceImpl struct {
	repo   repository.CatalogRepository
	config config.ImageConfig
}

func CreateCatalogService(repo repository.CatalogRepository, config config.ImageConfig) CatalogService {
	return &CatalogServiceImpl{repo: repo, config: config}
}

func (s *CatalogServiceImpl) GetCatalog(ctx context.Context, filter pkgdto.Filter) (resp dto.CatalogResponse, err error) {
	catalog, err := s.repo.FetchCatalog(ctx)
	if err != nil {
		return
	}

	// the caller is gone, the snapshot is stale for it
	if err = ctx.Err(); err != nil {
		return
	}

	filtered := catalog.Filter(filter.Category, filter.Q)
	start, end := filter.Window(len(filtered))

	resp.Categories = catalog.Categories()
	resp.Records = s.productResponses(filtered[start:end])
	resp.Metadata.TotalCount = uint64(len(filtered))
	if filter.Page > 0 && filter.Limit > 0 {
		resp.Metadata.Page = uint64(filter.Page)
		resp.Metadata.Limit = filter.Limit
	}

	return resp, nil
}

func (s *CatalogServiceImpl) GetProductDetail(ctx context.Context, id string, imageIndex int) (resp dto.ProductDetailResponse, err error) {
	catalog, err := s.repo.FetchCatalog(ctx)
	if err != nil {
		return
	}

	if err = ctx.Err(); err != nil {
		return
	}

	detail := domain.ResolveProductDetail(catalog, id)
	if !detail.Found {
		return resp, errs.ErrProductNotFound
	}

	gallery := domain.NewGallery(detail.Product)
	gallery.Select(imageIndex)

	resp = dto.ProductDetailResponse{
		Product:         s.productResponse(detail.Product),
		Recommendations: s.productResponses(detail.Recommendations),
		More:            s.productResponses(detail.More),
		Gallery: dto.GalleryResponse{
			Images:      gallery.Images(),
			ActiveIndex: gallery.ActiveIndex(),
			ActiveImage: gallery.ActiveImage(),
		},
	}

	return resp, nil
}

func (s *CatalogServiceImpl) productResponses(products domain.Catalog) []dto.ProductResponse {
	resp := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, s.productResponse(p))
	}

	return resp
}

func (s *CatalogServiceImpl) productResponse(p domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Description: p.Description,
		Image:       p.Image,
		Thumbnail:   utils.ResizedImageURL(p.Image, s.config.ThumbWidth, s.config.ThumbHeight, s.config.ThumbFormat),
		ExtraImages: p.ExtraImages,
		Stock:       p.Stock,
		OnSale:      p.OnSale,
		SalePrice:   p.SalePrice,
	}
}
