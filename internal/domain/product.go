package domain

import "strings"

type Product struct {
	ID          string   `json:"id" bson:"_id"`
	Name        string   `json:"name" bson:"name"`
	Price       float64  `json:"price" bson:"price"`
	Category    string   `json:"category" bson:"category"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Image       string   `json:"image" bson:"image"`
	ExtraImages []string `json:"extraImages" bson:"extraImages"`
	Stock       int64    `json:"stock" bson:"stock"`
	OnSale      bool     `json:"onSale" bson:"onSale"`
	SalePrice   *float64 `json:"salePrice,omitempty" bson:"salePrice,omitempty"`
}

// ImageAsset is an image stored on the image host. PublicID is the host's
// handle used to destroy the asset.
type ImageAsset struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"publicId,omitempty" bson:"publicId,omitempty"`
}

type ProductAssets struct {
	ImagePublicID string
	ExtraImages   []ImageAsset
}

// Images returns the primary image followed by the extra images.
func (p Product) Images() []string {
	images := make([]string, 0, len(p.ExtraImages)+1)
	images = append(images, p.Image)
	images = append(images, p.ExtraImages...)

	return images
}

// Catalog is an ordered point-in-time snapshot of products.
type Catalog []Product

// Filter keeps the products matching category (when non-empty) whose name
// contains term, ignoring case. Catalog order is preserved.
func (c Catalog) Filter(category, term string) Catalog {
	term = strings.ToLower(term)
	result := Catalog{}

	for _, p := range c {
		if category != "" && p.Category != category {
			continue
		}

		if !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}

		result = append(result, p)
	}

	return result
}

// Categories lists the distinct non-empty categories in order of first
// appearance.
func (c Catalog) Categories() []string {
	seen := make(map[string]struct{})
	categories := []string{}

	for _, p := range c {
		if p.Category == "" {
			continue
		}

		if _, ok := seen[p.Category]; ok {
			continue
		}

		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}

	return categories
}

func (c Catalog) FindByID(id string) (Product, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}

	return Product{}, false
}
