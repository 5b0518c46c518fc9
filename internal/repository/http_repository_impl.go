package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Blacksatth/Pagina-Web/internal/domain"
	"github.com/Blacksatth/Pagina-Web/pkg/errs"
	"github.com/Blacksatth/Pagina-Web/pkg/httpclient"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
)

type HTTPCatalogRepositoryImpl struct {
	url string
	cb  *gobreaker.CircuitBreaker[[]byte]
}

func CreateNewHTTPCatalogRepository(url string, cb *gobreaker.CircuitBreaker[[]byte]) CatalogRepository {
	return &HTTPCatalogRepositoryImpl{url: url, cb: cb}
}

func (r *HTTPCatalogRepositoryImpl) FetchCatalog(ctx context.Context) (domain.Catalog, error) {
	body, err := r.cb.Execute(func() ([]byte, error) {
		statusCode, body, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
			URL:     r.url,
			Method:  http.MethodGet,
			Headers: map[string]string{"Accept": "application/json"},
		})
		if err != nil {
			return nil, err
		}

		if statusCode < 200 || statusCode > 299 {
			return nil, fmt.Errorf("catalog source answered %d", statusCode)
		}

		return body, nil
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "FetchCatalog").Msg("")
		return nil, fmt.Errorf("%w: %v", errs.ErrFetch, err)
	}

	records, err := decodeRecords(body)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "FetchCatalog").Msg("")
		return nil, fmt.Errorf("%w: %v", errs.ErrFetch, err)
	}

	return NormalizeRecords(ctx, records), nil
}

// decodeRecords accepts a bare JSON array or an envelope with the array
// under "data".
func decodeRecords(body []byte) ([]ProductRecord, error) {
	var records []ProductRecord
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}

	var envelope struct {
		Data []ProductRecord `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	if envelope.Data == nil {
		return nil, fmt.Errorf("decoding catalog: no product list in response")
	}

	return envelope.Data, nil
}
