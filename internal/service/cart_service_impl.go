package service

import (
	"context"
	"sync"
	"time"

	"github.com/Blacksatth/Pagina-Web/internal/domain"
	"github.com/Blacksatth/Pagina-Web/internal/dto"
	"github.com/Blacksatth/Pagina-Web/internal/repository"
	"github.com/Blacksatth/Pagina-Web/pkg/errs"
	"github.com/rs/zerolog/log"
)

type CartServiceImpl struct {
	catalogRepo repository.CatalogRepository
	storage     repository.CartStorage
	ttl         time.Duration
	now         func() time.Time

	mu     sync.Mutex
	stores map[string]*cartEntry
}

type cartEntry struct {
	store    *CartStore
	lastSeen time.Time
}

func CreateCartService(catalogRepo repository.CatalogRepository, storage repository.CartStorage, ttl time.Duration) CartService {
	return &CartServiceImpl{
		catalogRepo: catalogRepo,
		storage:     storage,
		ttl:         ttl,
		now:         time.Now,
		stores:      make(map[string]*cartEntry),
	}
}

// store returns the session's cart store, rehydrating it on first use. The
// storage read runs outside the lock.
func (s *CartServiceImpl) store(ctx context.Context, sessionID string) *CartStore {
	if st := s.cached(sessionID); st != nil {
		return st
	}

	st := CreateCartStore(ctx, s.storage, sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.stores[sessionID]; ok {
		entry.lastSeen = s.now()
		return entry.store
	}
	s.stores[sessionID] = &cartEntry{store: st, lastSeen: s.now()}

	return st
}

func (s *CartServiceImpl) cached(sessionID string) *CartStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.stores[sessionID]
	if !ok {
		return nil
	}
	entry.lastSeen = s.now()

	return entry.store
}

// release drops an empty store. Storage already holds the same empty state,
// so the next request rehydrates an identical cart.
func (s *CartServiceImpl) release(sessionID string, st *CartStore) {
	if len(st.Items()) > 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.stores[sessionID]; ok && entry.store == st {
		delete(s.stores, sessionID)
	}
}

func (s *CartServiceImpl) GetCart(ctx context.Context, sessionID string) (resp dto.CartResponse, err error) {
	st := s.store(ctx, sessionID)
	defer s.release(sessionID, st)

	return s.cartResponse(st), nil
}

func (s *CartServiceImpl) AddItem(ctx context.Context, sessionID, productID string) (resp dto.CartResponse, err error) {
	catalog, err := s.catalogRepo.FetchCatalog(ctx)
	if err != nil {
		return
	}

	if err = ctx.Err(); err != nil {
		return
	}

	product, ok := catalog.FindByID(productID)
	if !ok {
		return resp, errs.ErrProductNotFound
	}

	st := s.store(ctx, sessionID)
	defer s.release(sessionID, st)

	if err = st.AddToCart(ctx, product); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddItem").Msg("")
		return resp, errs.ErrInternalServer
	}

	return s.cartResponse(st), nil
}

func (s *CartServiceImpl) IncreaseItem(ctx context.Context, sessionID, productID string) (resp dto.CartResponse, err error) {
	return s.mutate(ctx, sessionID, "IncreaseItem", func(st *CartStore) error {
		return st.IncreaseQuantity(ctx, productID)
	})
}

func (s *CartServiceImpl) DecreaseItem(ctx context.Context, sessionID, productID string) (resp dto.CartResponse, err error) {
	return s.mutate(ctx, sessionID, "DecreaseItem", func(st *CartStore) error {
		return st.DecreaseQuantity(ctx, productID)
	})
}

func (s *CartServiceImpl) RemoveItem(ctx context.Context, sessionID, productID string) (resp dto.CartResponse, err error) {
	return s.mutate(ctx, sessionID, "RemoveItem", func(st *CartStore) error {
		return st.RemoveFromCart(ctx, productID)
	})
}

func (s *CartServiceImpl) ClearCart(ctx context.Context, sessionID string) (resp dto.CartResponse, err error) {
	return s.mutate(ctx, sessionID, "ClearCart", func(st *CartStore) error {
		return st.ClearCart(ctx)
	})
}

func (s *CartServiceImpl) mutate(ctx context.Context, sessionID, component string, fn func(st *CartStore) error) (resp dto.CartResponse, err error) {
	st := s.store(ctx, sessionID)
	defer s.release(sessionID, st)

	if err = fn(st); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return resp, errs.ErrInternalServer
	}

	return s.cartResponse(st), nil
}

// EndSession drops the in-memory store. The persisted cart is kept.
func (s *CartServiceImpl) EndSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.stores, sessionID)
}

// PurgeIdleCarts removes carts not written within the TTL and evicts every
// store not used within it, persisted or not.
func (s *CartServiceImpl) PurgeIdleCarts(ctx context.Context) (purged int, err error) {
	cutoff := s.now().Add(-s.ttl)

	keys, err := s.storage.PurgeIdle(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	expired := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		expired[key] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for sessionID, entry := range s.stores {
		if _, ok := expired[entry.store.Key()]; ok || entry.lastSeen.Before(cutoff) {
			delete(s.stores, sessionID)
		}
	}

	return len(keys), nil
}

func (s *CartServiceImpl) cartResponse(st *CartStore) dto.CartResponse {
	items := st.Items()

	resp := dto.CartResponse{
		Items: make([]dto.CartItemResponse, 0, len(items)),
		Total: items.Total().InexactFloat64(),
	}

	for _, item := range items {
		resp.Items = append(resp.Items, cartItemResponse(st, item))
		resp.ItemCount += item.Quantity
	}

	return resp
}

func cartItemResponse(st *CartStore, item domain.CartItem) dto.CartItemResponse {
	return dto.CartItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Price:     item.Price,
		Image:     item.Image,
		Category:  item.Category,
		Quantity:  item.Quantity,
		LineTotal: st.TotalForItem(item).InexactFloat64(),
	}
}
