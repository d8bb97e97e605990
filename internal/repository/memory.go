package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"garderob/internal/domain"
)

// MemoryStore объединённое in-memory хранилище каталога и заказов
// с простыми генераторами ID и номеров заказов
type MemoryStore struct {
	mu             sync.RWMutex
	nextCatID      int64
	nextSetID      int64
	nextOrderID    int64
	nextItemID     int64
	nextOrderSeq   int64
	categoriesByID map[int64]domain.Category
	setsByID       map[int64]domain.ClothingSet
	ordersByID     map[int64]domain.Order
	itemsByID      map[int64]domain.OrderItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextCatID:      1,
		nextSetID:      1,
		nextOrderID:    1,
		nextItemID:     1,
		nextOrderSeq:   1,
		categoriesByID: make(map[int64]domain.Category),
		setsByID:       make(map[int64]domain.ClothingSet),
		ordersByID:     make(map[int64]domain.Order),
		itemsByID:      make(map[int64]domain.OrderItem),
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// Ensure interfaces
var _ ClothingSetRepository = (*MemoryStore)(nil)

// ClothingSetRepository implementation
func (m *MemoryStore) Create(ctx context.Context, s *domain.ClothingSet) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	s.ID = m.nextSetID
	m.nextSetID++
	s.CreatedAt = time.Now().UTC()
	m.setsByID[s.ID] = *s
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id int64) (*domain.ClothingSet, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	s, ok := m.setsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := s
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, s *domain.ClothingSet) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.setsByID[s.ID]; !ok {
		return ErrNotFound
	}
	m.setsByID[s.ID] = *s
	return nil
}

func (m *MemoryStore) List(ctx context.Context, f SetFilter) ([]domain.ClothingSet, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.ClothingSet, 0)
	for _, s := range m.setsByID {
		if f.ActiveOnly && !s.IsActive {
			continue
		}
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		if !containsIgnoreCase(s.Name, f.NameSubstring) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MemoryCategories репозиторий категорий поверх общего хранилища
type MemoryCategories struct{ store *MemoryStore }

func NewMemoryCategories(store *MemoryStore) *MemoryCategories {
	return &MemoryCategories{store: store}
}

var _ CategoryRepository = (*MemoryCategories)(nil)

func (mc *MemoryCategories) Create(ctx context.Context, c *domain.Category) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	for _, existing := range mc.store.categoriesByID {
		if existing.Name == c.Name {
			return ErrDuplicateName
		}
	}
	c.ID = mc.store.nextCatID
	mc.store.nextCatID++
	c.CreatedAt = time.Now().UTC()
	mc.store.categoriesByID[c.ID] = *c
	return nil
}

func (mc *MemoryCategories) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	c, ok := mc.store.categoriesByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (mc *MemoryCategories) Update(ctx context.Context, c *domain.Category) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	if _, ok := mc.store.categoriesByID[c.ID]; !ok {
		return ErrNotFound
	}
	for _, existing := range mc.store.categoriesByID {
		if existing.ID != c.ID && existing.Name == c.Name {
			return ErrDuplicateName
		}
	}
	mc.store.categoriesByID[c.ID] = *c
	return nil
}

func (mc *MemoryCategories) List(ctx context.Context, f CategoryFilter) ([]domain.Category, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	out := make([]domain.Category, 0)
	for _, c := range mc.store.categoriesByID {
		if f.ActiveOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// MemoryOrders репозиторий заказов поверх общего хранилища
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

// Create сохраняет заказ и позиции как единое целое; номер формата
// ORD-<год>-<порядковый, три знака> присваивается один раз и далее неизменен
func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order, items []domain.OrderItem) (*domain.OrderWithItems, error) {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	o.ID = mo.store.nextOrderID
	mo.store.nextOrderID++
	o.OrderNumber = fmt.Sprintf("ORD-%d-%03d", time.Now().UTC().Year(), mo.store.nextOrderSeq)
	mo.store.nextOrderSeq++
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	mo.store.ordersByID[o.ID] = *o

	resolved := make([]domain.ItemWithSet, 0, len(items))
	for i := range items {
		it := items[i]
		it.ID = mo.store.nextItemID
		mo.store.nextItemID++
		it.OrderID = o.ID
		mo.store.itemsByID[it.ID] = it
		// sets are only ever soft-deleted, so referenced ids stay resolvable
		resolved = append(resolved, domain.ItemWithSet{
			OrderItem:   it,
			ClothingSet: mo.store.setsByID[it.ClothingSetID],
		})
	}
	return &domain.OrderWithItems{Order: *o, Items: resolved}, nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id int64) (*domain.OrderWithItems, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return mo.resolve(o), nil
}

func (mo *MemoryOrders) Update(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	if _, ok := mo.store.ordersByID[o.ID]; !ok {
		return ErrNotFound
	}
	mo.store.ordersByID[o.ID] = *o
	return nil
}

func (mo *MemoryOrders) List(ctx context.Context, f OrderFilter) ([]domain.OrderWithItems, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	out := make([]domain.OrderWithItems, 0)
	for _, o := range mo.store.ordersByID {
		if f.HoldingOnly && !o.HoldsInventory() {
			continue
		}
		if f.OverlapsStart != nil && f.OverlapsEnd != nil && !o.Overlaps(*f.OverlapsStart, *f.OverlapsEnd) {
			continue
		}
		out = append(out, *mo.resolve(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// caller holds the lock
func (mo *MemoryOrders) resolve(o domain.Order) *domain.OrderWithItems {
	items := make([]domain.ItemWithSet, 0)
	for _, it := range mo.store.itemsByID {
		if it.OrderID != o.ID {
			continue
		}
		// sets are only ever soft-deleted, so referenced ids stay resolvable
		items = append(items, domain.ItemWithSet{
			OrderItem:   it,
			ClothingSet: mo.store.setsByID[it.ClothingSetID],
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return &domain.OrderWithItems{Order: o, Items: items}
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Для in-memory используем блокировку записи и помечаем контекст, чтобы репозитории пропускали внутренние локи
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
