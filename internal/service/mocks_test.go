package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/Blacksatth/Pagina-Web/internal/domain"
	"github.com/Blacksatth/Pagina-Web/internal/repository"
	"github.com/Blacksatth/Pagina-Web/pkg/errs"
)

var errStorageDown = errors.New("storage down")

type mockCatalogRepository struct {
	catalog domain.Catalog
	err     error
	calls   int
}

func (m *mockCatalogRepository) FetchCatalog(ctx context.Context) (domain.Catalog, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}

	return m.catalog, nil
}

// flakyStorage wraps a real storage and fails writes on demand.
type flakyStorage struct {
	repository.CartStorage
	failSet bool
	sets    int
}

func (s *flakyStorage) Set(ctx context.Context, key string, value []byte) error {
	if s.failSet {
		return errStorageDown
	}
	s.sets++

	return s.CartStorage.Set(ctx, key, value)
}

func newFlakyStorage() *flakyStorage {
	return &flakyStorage{CartStorage: repository.CreateNewMemoryCartStorage()}
}

type mockProductWriter struct {
	products map[string]domain.Product
	assets   map[string]domain.ProductAssets
	nextID   int
}

func newMockProductWriter() *mockProductWriter {
	return &mockProductWriter{
		products: make(map[string]domain.Product),
		assets:   make(map[string]domain.ProductAssets),
		nextID:   100,
	}
}

func (m *mockProductWriter) AddProduct(ctx context.Context, data domain.Product, assets domain.ProductAssets) (string, error) {
	m.nextID++
	id := strconv.Itoa(m.nextID)
	data.ID = id
	m.products[id] = data
	m.assets[id] = assets

	return id, nil
}

func (m *mockProductWriter) UpdateProduct(ctx context.Context, data domain.Product) error {
	if _, ok := m.products[data.ID]; !ok {
		return errs.ErrNotFound
	}
	m.products[data.ID] = data

	return nil
}

func (m *mockProductWriter) DeleteProduct(ctx context.Context, id string) ([]string, error) {
	if _, ok := m.products[id]; !ok {
		return nil, errs.ErrNotFound
	}

	assets := m.assets[id]
	publicIDs := []string{}
	if assets.ImagePublicID != "" {
		publicIDs = append(publicIDs, assets.ImagePublicID)
	}
	for _, img := range assets.ExtraImages {
		if img.PublicID != "" {
			publicIDs = append(publicIDs, img.PublicID)
		}
	}

	delete(m.products, id)
	delete(m.assets, id)

	return publicIDs, nil
}

type publishedEvent struct {
	EventType string
	Key       string
	Data      interface{}
}

type mockEventPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (m *mockEventPublisher) Publish(ctx context.Context, eventType, key string, data interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, publishedEvent{EventType: eventType, Key: key, Data: data})

	return nil
}

type mockUserRepository struct {
	users map[int64]domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int64]domain.User)}
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}

	return domain.User{}, nil
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepository) AddUser(ctx context.Context, data domain.User) (int64, error) {
	data.ID = int64(len(m.users) + 1)
	m.users[data.ID] = data

	return data.ID, nil
}
