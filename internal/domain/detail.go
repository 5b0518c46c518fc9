package domain

const (
	RecommendationLimit = 4
	MoreProductsLimit   = 8
)

type ProductDetail struct {
	Product         Product
	Found           bool
	Recommendations Catalog
	More            Catalog
}

// ResolveProductDetail looks up id in the catalog and derives the same
// category recommendations and the general list, both in catalog order and
// without the product itself. An unknown id yields Found false and empty
// lists.
func ResolveProductDetail(catalog Catalog, id string) ProductDetail {
	detail := ProductDetail{
		Recommendations: Catalog{},
		More:            Catalog{},
	}

	product, ok := catalog.FindByID(id)
	if !ok {
		return detail
	}

	detail.Product = product
	detail.Found = true

	for _, p := range catalog {
		if p.ID == product.ID {
			continue
		}

		if p.Category == product.Category && len(detail.Recommendations) < RecommendationLimit {
			detail.Recommendations = append(detail.Recommendations, p)
		}

		if len(detail.More) < MoreProductsLimit {
			detail.More = append(detail.More, p)
		}

		if len(detail.Recommendations) == RecommendationLimit && len(detail.More) == MoreProductsLimit {
			break
		}
	}

	return detail
}
