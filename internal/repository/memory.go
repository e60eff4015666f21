package repository

import (
	"context"
	"sync"
	"time"

	"autoparts/internal/domain"
)

// MemoryStore объединённое in-memory хранилище каталога, корзин и заказов
type MemoryStore struct {
	mu          sync.RWMutex
	nextOrderID int64
	products    map[ProductKey]domain.RawProduct
	// productIndex productId строки своего склада -> товар
	productIndex map[string]ProductKey
	carts        map[string][]domain.CartLine
	ordersByID   map[int64]domain.Order
	now          func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextOrderID:  1,
		products:     make(map[ProductKey]domain.RawProduct),
		productIndex: make(map[string]ProductKey),
		carts:        make(map[string][]domain.CartLine),
		ordersByID:   make(map[int64]domain.Order),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

type txKey struct{}

// inTx: контекст уже под блокировкой MemoryTx
func inTx(ctx context.Context) bool {
	held, _ := ctx.Value(txKey{}).(bool)
	return held
}

// read берёт блокировку на чтение вне транзакции и возвращает её освобождение
func (m *MemoryStore) read(ctx context.Context) (release func()) {
	if inTx(ctx) {
		return func() {}
	}
	m.mu.RLock()
	return m.mu.RUnlock
}

func (m *MemoryStore) write(ctx context.Context) (release func()) {
	if inTx(ctx) {
		return func() {}
	}
	m.mu.Lock()
	return m.mu.Unlock
}

// MemoryOrders заказы поверх общего MemoryStore
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	defer mo.store.write(ctx)()
	o.ID = mo.store.nextOrderID
	mo.store.nextOrderID++
	o.CreatedAt = mo.store.now()
	o.UpdatedAt = o.CreatedAt
	mo.store.ordersByID[o.ID] = cloneOrder(*o)
	return nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	defer mo.store.read(ctx)()
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := cloneOrder(o)
	return &cp, nil
}

func (mo *MemoryOrders) Update(ctx context.Context, o *domain.Order) error {
	defer mo.store.write(ctx)()
	if _, ok := mo.store.ordersByID[o.ID]; !ok {
		return ErrNotFound
	}
	o.UpdatedAt = mo.store.now()
	mo.store.ordersByID[o.ID] = cloneOrder(*o)
	return nil
}

func cloneOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	return o
}

// MemoryTx эмулирует транзакцию блокировкой записи на всё хранилище
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

var _ TxManager = (*MemoryTx)(nil)

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// вложенная транзакция работает под уже взятой блокировкой
	if inTx(ctx) {
		return fn(ctx)
	}
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}
