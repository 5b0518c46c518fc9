package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Blacksatth/Pagina-Web/internal/domain"
	"github.com/Blacksatth/Pagina-Web/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const cartKeyPrefix = "cart:"

func CartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

// CartStore owns the cart of one session. Every mutation is written to
// storage before it is applied in memory; a failed write leaves the cart as
// it was.
type CartStore struct {
	mu      sync.Mutex
	key     string
	storage repository.CartStorage
	items   domain.Cart
}

// CreateCartStore rehydrates the session cart. Unreadable or corrupt data
// starts an empty cart.
func CreateCartStore(ctx context.Context, storage repository.CartStorage, sessionID string) *CartStore {
	s := &CartStore{key: CartKey(sessionID), storage: storage, items: domain.Cart{}}

	raw, err := storage.Get(ctx, s.key)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "CreateCartStore").Msg("cart storage unreadable, starting empty")
		return s
	}

	if raw == nil {
		return s
	}

	var stored domain.Cart
	if err := json.Unmarshal(raw, &stored); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "CreateCartStore").Str("key", s.key).Msg("corrupt cart, starting empty")
		return s
	}

	seen := make(map[string]struct{}, len(stored))
	for _, item := range stored {
		if item.ID == "" || item.Quantity < 1 {
			continue
		}
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		s.items = append(s.items, item)
	}

	return s
}

func (s *CartStore) Key() string {
	return s.key
}

func (s *CartStore) Items() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.items.Clone()
}

func (s *CartStore) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.items.Total()
}

func (s *CartStore) TotalForItem(item domain.CartItem) decimal.Decimal {
	return item.Total()
}

// AddToCart increments the quantity of an existing line or appends a new one
// with quantity 1.
func (s *CartStore) AddToCart(ctx context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.items.Clone()
	if i := next.IndexOf(product.ID); i >= 0 {
		next[i].Quantity++
	} else {
		next = append(next, domain.CartItem{Product: product, Quantity: 1})
	}

	return s.commit(ctx, next)
}

func (s *CartStore) IncreaseQuantity(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.items.IndexOf(id)
	if i < 0 {
		return nil
	}

	next := s.items.Clone()
	next[i].Quantity++

	return s.commit(ctx, next)
}

// DecreaseQuantity removes the line when its quantity reaches zero.
func (s *CartStore) DecreaseQuantity(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.items.IndexOf(id)
	if i < 0 {
		return nil
	}

	next := s.items.Clone()
	next[i].Quantity--
	if next[i].Quantity < 1 {
		next = append(next[:i], next[i+1:]...)
	}

	return s.commit(ctx, next)
}

func (s *CartStore) RemoveFromCart(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.items.IndexOf(id)
	if i < 0 {
		return nil
	}

	next := s.items.Clone()
	next = append(next[:i], next[i+1:]...)

	return s.commit(ctx, next)
}

func (s *CartStore) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, domain.Cart{})
}

// commit must be called with mu held.
func (s *CartStore) commit(ctx context.Context, next domain.Cart) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return err
	}

	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CartStore.commit").Str("key", s.key).Msg("")
		return err
	}

	s.items = next

	return nil
}
