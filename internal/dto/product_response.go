package dto

import pkgdto "github.com/Blacksatth/Pagina-Web/pkg/dto"

type ProductResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image"`
	Thumbnail   string   `json:"thumbnail"`
	ExtraImages []string `json:"extraImages"`
	Stock       int64    `json:"stock"`
	OnSale      bool     `json:"onSale"`
	SalePrice   *float64 `json:"salePrice,omitempty"`
}

// CatalogResponse carries the filtered page of []ProductResponse in Records.
type CatalogResponse struct {
	Categories []string `json:"categories"`
	pkgdto.PaginationResponse
}

type GalleryResponse struct {
	Images      []string `json:"images"`
	ActiveIndex int      `json:"active_index"`
	ActiveImage string   `json:"active_image"`
}

type ProductDetailResponse struct {
	Product         ProductResponse   `json:"product"`
	Recommendations []ProductResponse `json:"recommendations"`
	More            []ProductResponse `json:"more"`
	Gallery         GalleryResponse   `json:"gallery"`
}

type AddProductResponse struct {
	ID string `json:"id"`
}
