package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/Blacksatth/Pagina-Web/config"
	"github.com/Blacksatth/Pagina-Web/internal/domain"
	"github.com/Blacksatth/Pagina-Web/internal/dto"
	"github.com/Blacksatth/Pagina-Web/internal/infrastructure/message-queue/kafka"
	"github.com/Blacksatth/Pagina-Web/internal/middleware"
	"github.com/Blacksatth/Pagina-Web/internal/repository"
	"github.com/Blacksatth/Pagina-Web/internal/service"
	pkgdto "github.com/Blacksatth/Pagina-Web/pkg/dto"
	"github.com/Blacksatth/Pagina-Web/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

const sessionHeader = "X-Test-Session"

// memoryProductRepository serves both the catalog and the admin writes.
type memoryProductRepository struct {
	catalog domain.Catalog
	nextID  int
}

func (r *memoryProductRepository) FetchCatalog(ctx context.Context) (domain.Catalog, error) {
	return append(domain.Catalog{}, r.catalog...), nil
}

func (r *memoryProductRepository) AddProduct(ctx context.Context, data domain.Product, assets domain.ProductAssets) (string, error) {
	r.nextID++
	data.ID = strconv.Itoa(r.nextID)
	r.catalog = append(r.catalog, data)

	return data.ID, nil
}

func (r *memoryProductRepository) UpdateProduct(ctx context.Context, data domain.Product) error {
	for i, p := range r.catalog {
		if p.ID == data.ID {
			data.ExtraImages = p.ExtraImages
			r.catalog[i] = data
			return nil
		}
	}

	return errs.ErrNotFound
}

func (r *memoryProductRepository) DeleteProduct(ctx context.Context, id string) ([]string, error) {
	for i, p := range r.catalog {
		if p.ID == id {
			r.catalog = append(r.catalog[:i], r.catalog[i+1:]...)
			return []string{}, nil
		}
	}

	return nil, errs.ErrNotFound
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type ControllerTestSuite struct {
	suite.Suite
	e    *echo.Echo
	repo *memoryProductRepository
}

func (s *ControllerTestSuite) SetupTest() {
	s.repo = &memoryProductRepository{
		nextID: 100,
		catalog: domain.Catalog{
			{ID: "1", Name: "Straw Hat", Price: 20, Category: "hats", Image: "a.jpg", ExtraImages: []string{"a2.jpg"}},
			{ID: "2", Name: "Wool Hat", Price: 25, Category: "hats", Image: "b.jpg"},
			{ID: "3", Name: "Linen Shirt", Price: 40, Category: "shirts", Image: "c.jpg"},
		},
	}

	cartSession := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.CartSessionContextKey, c.Request().Header.Get(sessionHeader))
			return next(c)
		}
	}
	passthrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }

	s.e = echo.New()
	g := s.e.Group("/api/v1")

	CreateCatalogController(g, service.CreateCatalogService(s.repo, config.ImageConfig{ThumbWidth: 10, ThumbHeight: 10}))
	CreateCartController(g, service.CreateCartService(s.repo, repository.CreateNewMemoryCartStorage(), time.Hour), cartSession)
	CreateAdminController(g, service.CreateProductService(s.repo, kafka.NopPublisher{}), passthrough, passthrough)
}

func (s *ControllerTestSuite) do(method, path, session string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(sessionHeader, session)
	rec := httptest.NewRecorder()

	s.e.ServeHTTP(rec, req)

	var env envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))

	return rec, env
}

func (s *ControllerTestSuite) Test_GetCatalog() {
	type TestCase struct {
		Name           string
		Query          string
		ExpectedStatus int
		ExpectedTotal  uint64
		ExpectedLen    int
	}

	testCases := []TestCase{
		{Name: "all products", Query: "", ExpectedStatus: http.StatusOK, ExpectedTotal: 3, ExpectedLen: 3},
		{Name: "category filter", Query: "?category=hats", ExpectedStatus: http.StatusOK, ExpectedTotal: 2, ExpectedLen: 2},
		{Name: "search", Query: "?q=linen", ExpectedStatus: http.StatusOK, ExpectedTotal: 1, ExpectedLen: 1},
		{Name: "no results", Query: "?category=hats&q=shirt", ExpectedStatus: http.StatusOK, ExpectedTotal: 0, ExpectedLen: 0},
		{Name: "second page", Query: "?limit=2&page=2", ExpectedStatus: http.StatusOK, ExpectedTotal: 3, ExpectedLen: 1},
		{Name: "huge page", Query: "?limit=4&page=2305843009213693953", ExpectedStatus: http.StatusOK, ExpectedTotal: 3, ExpectedLen: 0},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			rec, env := s.do(http.MethodGet, "/api/v1/products"+tc.Query, "s1", nil)
			s.Equal(tc.ExpectedStatus, rec.Code)

			var resp struct {
				Categories []string                  `json:"categories"`
				Metadata   pkgdto.PaginationMetadata `json:"_metadata"`
				Records    []dto.ProductResponse     `json:"records"`
			}
			s.Require().NoError(json.Unmarshal(env.Data, &resp))
			s.Equal(tc.ExpectedTotal, resp.Metadata.TotalCount)
			s.Len(resp.Records, tc.ExpectedLen)
			s.Equal([]string{"hats", "shirts"}, resp.Categories)
		})
	}
}

func (s *ControllerTestSuite) Test_GetProductDetail() {
	rec, env := s.do(http.MethodGet, "/api/v1/products/1?image=1", "s1", nil)
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.ProductDetailResponse
	s.Require().NoError(json.Unmarshal(env.Data, &resp))
	s.Equal("1", resp.Product.ID)
	s.Len(resp.Recommendations, 1)
	s.Len(resp.More, 2)
	s.Equal("a2.jpg", resp.Gallery.ActiveImage)

	rec, env = s.do(http.MethodGet, "/api/v1/products/missing", "s1", nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("product not found", env.Message)
}

func (s *ControllerTestSuite) Test_CartFlow() {
	type TestCase struct {
		Name           string
		Method         string
		Path           string
		Body           interface{}
		ExpectedStatus int
		ExpectedCount  int
	}

	testCases := []TestCase{
		{Name: "add hat", Method: http.MethodPost, Path: "/api/v1/cart/items", Body: dto.CartItemRequest{ProductID: "1"}, ExpectedStatus: http.StatusOK, ExpectedCount: 1},
		{Name: "add hat again", Method: http.MethodPost, Path: "/api/v1/cart/items", Body: dto.CartItemRequest{ProductID: "1"}, ExpectedStatus: http.StatusOK, ExpectedCount: 2},
		{Name: "add shirt", Method: http.MethodPost, Path: "/api/v1/cart/items", Body: dto.CartItemRequest{ProductID: "3"}, ExpectedStatus: http.StatusOK, ExpectedCount: 3},
		{Name: "increase shirt", Method: http.MethodPut, Path: "/api/v1/cart/items/3/increase", ExpectedStatus: http.StatusOK, ExpectedCount: 4},
		{Name: "decrease hat", Method: http.MethodPut, Path: "/api/v1/cart/items/1/decrease", ExpectedStatus: http.StatusOK, ExpectedCount: 3},
		{Name: "remove shirt", Method: http.MethodDelete, Path: "/api/v1/cart/items/3", ExpectedStatus: http.StatusOK, ExpectedCount: 1},
		{Name: "get cart", Method: http.MethodGet, Path: "/api/v1/cart", ExpectedStatus: http.StatusOK, ExpectedCount: 1},
		{Name: "clear", Method: http.MethodDelete, Path: "/api/v1/cart", ExpectedStatus: http.StatusOK, ExpectedCount: 0},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			rec, env := s.do(tc.Method, tc.Path, "flow", tc.Body)
			s.Equal(tc.ExpectedStatus, rec.Code)

			var resp dto.CartResponse
			s.Require().NoError(json.Unmarshal(env.Data, &resp))
			s.Equal(tc.ExpectedCount, resp.ItemCount)
		})
	}
}

func (s *ControllerTestSuite) Test_AddUnknownProductToCart() {
	rec, env := s.do(http.MethodPost, "/api/v1/cart/items", "s1", dto.CartItemRequest{ProductID: "404"})
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("error", env.Status)

	rec, _ = s.do(http.MethodPost, "/api/v1/cart/items", "s1", dto.CartItemRequest{})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ControllerTestSuite) Test_AdminProducts() {
	salePrice := 15.0
	rec, env := s.do(http.MethodPost, "/api/v1/admin/products", "", dto.ProductRequest{
		Name: "Cap", Price: 18, Category: "hats", Image: "cap.jpg", OnSale: true, SalePrice: &salePrice,
	})
	s.Equal(http.StatusCreated, rec.Code)

	var created dto.AddProductResponse
	s.Require().NoError(json.Unmarshal(env.Data, &created))
	s.Equal("101", created.ID)

	tooHigh := 20.0
	rec, env = s.do(http.MethodPost, "/api/v1/admin/products", "", dto.ProductRequest{
		Name: "Cap", Price: 18, Category: "hats", Image: "cap.jpg", OnSale: true, SalePrice: &tooHigh,
	})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(errs.ErrInvalidSalePrice.Error(), env.Message)

	rec, _ = s.do(http.MethodPut, "/api/v1/admin/products/"+created.ID, "", dto.ProductRequest{
		Name: "Cap", Price: 22, Category: "hats", Image: "cap.jpg",
	})
	s.Equal(http.StatusOK, rec.Code)

	rec, env = s.do(http.MethodGet, "/api/v1/products/"+created.ID, "", nil)
	s.Equal(http.StatusOK, rec.Code)
	var detail dto.ProductDetailResponse
	s.Require().NoError(json.Unmarshal(env.Data, &detail))
	s.Equal(22.0, detail.Product.Price)
	s.False(detail.Product.OnSale)

	rec, _ = s.do(http.MethodDelete, "/api/v1/admin/products/"+created.ID, "", nil)
	s.Equal(http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodDelete, "/api/v1/admin/products/"+created.ID, "", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}
