package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SUP-BookingService/internal/domain"
)

// Store хранилище в памяти для режима разработки и тестов.
// Все операции потокобезопасны, резерв мест атомарен так же, как в PostgreSQL.
type Store struct {
	mu          sync.RWMutex
	instructors map[uuid.UUID]domain.Instructor
	routes      map[uuid.UUID]domain.Route
	slots       map[uuid.UUID]domain.Slot
	bookings    map[uuid.UUID]domain.Booking

	txMu sync.Mutex
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		instructors: make(map[uuid.UUID]domain.Instructor),
		routes:      make(map[uuid.UUID]domain.Route),
		slots:       make(map[uuid.UUID]domain.Slot),
		bookings:    make(map[uuid.UUID]domain.Booking),
	}
}

// Catalog репозиторий каталога поверх хранилища
func (s *Store) Catalog() *CatalogRepository {
	return &CatalogRepository{store: s}
}

// Slots репозиторий слотов поверх хранилища
func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{store: s}
}

// Bookings репозиторий бронирований поверх хранилища
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// TxManager менеджер "транзакций" хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

// TxManager сериализует транзакционные блоки.
// Откат не поддерживается: блоки в сервисах сначала проверяют условия, затем пишут.
type TxManager struct {
	store *Store
}

type txKey struct{}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

// Do выполняет fn под блокировкой транзакций хранилища
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable выполняет fn под блокировкой транзакций хранилища
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly выполняет fn под блокировкой транзакций хранилища
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}
