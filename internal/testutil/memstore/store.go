// Package memstore in-memory реализация репозиториев и менеджера транзакций для тестов
// Транзакции сериализуются глобальным мьютексом, при ошибке состояние откатывается к снимку
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
)

// User пользователь, на которого ссылаются бронирования
type User struct {
	ID    int64
	Name  string
	Email string
}

type state struct {
	clubs        map[int64]domain.Club
	courts       map[int64]domain.Court
	slots        map[int64]domain.Slot
	reservations map[int64]domain.Reservation
	users        map[int64]User

	nextSlotID        int64
	nextReservationID int64
}

func (s *state) clone() *state {
	c := &state{
		clubs:             make(map[int64]domain.Club, len(s.clubs)),
		courts:            make(map[int64]domain.Court, len(s.courts)),
		slots:             make(map[int64]domain.Slot, len(s.slots)),
		reservations:      make(map[int64]domain.Reservation, len(s.reservations)),
		users:             make(map[int64]User, len(s.users)),
		nextSlotID:        s.nextSlotID,
		nextReservationID: s.nextReservationID,
	}
	for k, v := range s.clubs {
		c.clubs[k] = v
	}
	for k, v := range s.courts {
		c.courts[k] = v
	}
	for k, v := range s.slots {
		c.slots[k] = v
	}
	for k, v := range s.reservations {
		c.reservations[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store хранилище в памяти
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	data *state

	createBatchErrs      map[int64]error
	reservationCreateErr error
	now                  func() time.Time
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		data: &state{
			clubs:        make(map[int64]domain.Club),
			courts:       make(map[int64]domain.Court),
			slots:        make(map[int64]domain.Slot),
			reservations: make(map[int64]domain.Reservation),
			users:        make(map[int64]User),
		},
		createBatchErrs: make(map[int64]error),
		now:             time.Now,
	}
}

// AddClub добавляет клуб
func (s *Store) AddClub(c domain.Club) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.clubs[c.ID] = c
}

// AddCourt добавляет корт
func (s *Store) AddCourt(c domain.Court) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.courts[c.ID] = c
}

// AddUser добавляет пользователя
func (s *Store) AddUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.users[u.ID] = u
}

// AddSlot добавляет слот и возвращает его с присвоенным ID
func (s *Store) AddSlot(sl domain.Slot) domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertSlotLocked(sl)
}

// AddReservation добавляет бронирование в обход проверок
func (s *Store) AddReservation(r domain.Reservation) domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.nextReservationID++
	r.ID = s.data.nextReservationID
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	s.data.reservations[r.ID] = r
	return r
}

// FailCreateBatch заставляет CreateBatch для корта вернуть err
func (s *Store) FailCreateBatch(courtID int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createBatchErrs[courtID] = err
}

// FailReservationCreate заставляет следующий Create бронирования вернуть err
func (s *Store) FailReservationCreate(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reservationCreateErr = err
}

// Slot возвращает слот по ID
func (s *Store) Slot(id int64) (domain.Slot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.data.slots[id]
	return sl, ok
}

// SlotsByCourtAndDate возвращает слоты корта на дату по времени начала
func (s *Store) SlotsByCourtAndDate(courtID int64, date time.Time) []domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	date = domain.DateOnly(date)
	result := make([]domain.Slot, 0)
	for _, sl := range s.data.slots {
		if sl.CourtID == courtID && sl.Date.Equal(date) {
			result = append(result, sl)
		}
	}
	sortSlots(result)
	return result
}

// SlotCount общее количество слотов
func (s *Store) SlotCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.slots)
}

// ReservationCount общее количество бронирований
func (s *Store) ReservationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.reservations)
}

// ReservationsBySlot количество бронирований слота
func (s *Store) ReservationsBySlot(slotID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.data.reservations {
		if r.SlotID == slotID {
			n++
		}
	}
	return n
}

func (s *Store) insertSlotLocked(sl domain.Slot) domain.Slot {
	s.data.nextSlotID++
	sl.ID = s.data.nextSlotID
	sl.Date = domain.DateOnly(sl.Date)
	if sl.Availability == "" {
		sl.Availability = domain.AvailabilityAvailable
	}
	if sl.CreatedAt.IsZero() {
		sl.CreatedAt = s.now()
	}
	s.data.slots[sl.ID] = sl
	return sl
}

// Slots репозиторий слотов
func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{s: s}
}

// Clubs репозиторий клубов
func (s *Store) Clubs() *ClubRepository {
	return &ClubRepository{s: s}
}

// Reservations репозиторий бронирований
func (s *Store) Reservations() *ReservationRepository {
	return &ReservationRepository{s: s}
}

// TxManager менеджер транзакций
func (s *Store) TxManager() *TxManager {
	return &TxManager{s: s}
}

type txKey struct{}

// TxManager сериализует транзакции и откатывает состояние при ошибке
type TxManager struct {
	s *Store
}

// Do выполняет fn в транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable выполняет fn в транзакции
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	m.s.mu.Lock()
	snapshot := m.s.data.clone()
	m.s.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			m.s.restore(snapshot)
			panic(p)
		}
		if err != nil {
			m.s.restore(snapshot)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, true))
}

func (s *Store) restore(snapshot *state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = snapshot
}
