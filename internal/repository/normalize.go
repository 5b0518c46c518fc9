package repository

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Blacksatth/Pagina-Web/internal/domain"
	"github.com/Blacksatth/Pagina-Web/pkg/errs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRecord is a product as delivered by a backend, before its loosely
// typed fields are coerced into domain.Product.
type ProductRecord map[string]interface{}

// NormalizeRecords converts records into a catalog. Malformed records are
// logged and dropped, the rest keep their order.
func NormalizeRecords(ctx context.Context, records []ProductRecord) domain.Catalog {
	catalog := make(domain.Catalog, 0, len(records))

	for i, record := range records {
		product, err := NormalizeRecord(record)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Int("index", i).Str("component", "NormalizeRecords").Msg("dropping product record")
			continue
		}

		catalog = append(catalog, product)
	}

	return catalog
}

func NormalizeRecord(record ProductRecord) (product domain.Product, err error) {
	rawID, ok := record["id"]
	if !ok {
		rawID = record["_id"]
	}

	product.ID = canonicalID(rawID)
	if product.ID == "" {
		return product, fmt.Errorf("%w: missing id", errs.ErrMalformedData)
	}

	product.Name = strings.TrimSpace(cast.ToString(record["name"]))
	if product.Name == "" {
		return product, fmt.Errorf("%w: product %s has no name", errs.ErrMalformedData, product.ID)
	}

	product.Price, err = toNumber(record["price"])
	if err != nil || product.Price <= 0 {
		return product, fmt.Errorf("%w: product %s has no valid price", errs.ErrMalformedData, product.ID)
	}

	images := toStrings(record["image"])
	if len(images) == 0 || images[0] == "" {
		return product, fmt.Errorf("%w: product %s has no image", errs.ErrMalformedData, product.ID)
	}
	product.Image = images[0]

	extras := make([]string, 0, len(images))
	extras = append(extras, images[1:]...)
	extras = append(extras, toStrings(record["extraImages"])...)

	product.ExtraImages = []string{}
	for _, img := range extras {
		if img == "" || img == product.Image {
			continue
		}
		product.ExtraImages = append(product.ExtraImages, img)
	}

	product.Category = cast.ToString(record["category"])
	product.Description = cast.ToString(record["description"])

	if stock, err := cast.ToInt64E(record["stock"]); err == nil && stock > 0 {
		product.Stock = stock
	}

	product.OnSale = cast.ToBool(record["onSale"])
	if product.OnSale {
		salePrice, err := toNumber(record["salePrice"])
		if err != nil || salePrice <= 0 || salePrice >= product.Price {
			product.OnSale = false
		} else {
			product.SalePrice = &salePrice
		}
	}

	return product, nil
}

func canonicalID(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return id.Hex()
	case float64:
		// beyond int64 the conversion is undefined, keep the float form
		if id == math.Trunc(id) && math.Abs(id) < 1<<63 {
			return strconv.FormatInt(int64(id), 10)
		}
		return strconv.FormatFloat(id, 'f', -1, 64)
	case float32:
		return canonicalID(float64(id))
	default:
		return strings.TrimSpace(cast.ToString(id))
	}
}

func toNumber(v interface{}) (float64, error) {
	switch n := v.(type) {
	case nil, bool:
		return 0, fmt.Errorf("not a number: %v", v)
	case []byte:
		return strconv.ParseFloat(string(n), 64)
	case primitive.Decimal128:
		return strconv.ParseFloat(n.String(), 64)
	default:
		return cast.ToFloat64E(n)
	}
}

// toStrings flattens a string, a list of strings or a list of {url} objects.
func toStrings(v interface{}) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return []string{val}
	case []string:
		return val
	case primitive.A:
		return toStrings([]interface{}(val))
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, imageURL(item))
		}
		return out
	default:
		return []string{imageURL(val)}
	}
}

func imageURL(v interface{}) string {
	switch val := v.(type) {
	case map[string]interface{}:
		return cast.ToString(val["url"])
	case primitive.M:
		return cast.ToString(val["url"])
	case primitive.D:
		return cast.ToString(val.Map()["url"])
	default:
		return cast.ToString(val)
	}
}
