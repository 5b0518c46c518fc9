package dto

type ImageRequest struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type ProductRequest struct {
	ID          string         `json:"-"`
	Name        string         `json:"name"`
	Price       float64        `json:"price"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	PublicID    string         `json:"publicId"`
	ExtraImages []ImageRequest `json:"extraImages"`
	Stock       int64          `json:"stock"`
	OnSale      bool           `json:"onSale"`
	SalePrice   *float64       `json:"salePrice"`
}

type CartItemRequest struct {
	ProductID string `json:"product_id"`
}
