package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"roomradar/constants"
	"roomradar/models"

	"github.com/google/uuid"
)

// MemoryStore bản cài đặt in-memory của Store, dùng cho test và ENV=local.
// Tx nhân bản toàn bộ dữ liệu và chỉ swap lại khi fn thành công, nên một
// đơn vị ghi thất bại không để lại thay đổi nào quan sát được.
type MemoryStore struct {
	mu   *sync.Mutex
	data *memData
	inTx bool
}

type memData struct {
	users         map[string]models.User
	buildings     map[string]models.Building
	rooms         map[string]models.Room
	bookings      map[string]models.Booking
	transactions  map[string]models.Transaction
	notifications map[string]models.Notification
}

func newMemData() *memData {
	return &memData{
		users:         make(map[string]models.User),
		buildings:     make(map[string]models.Building),
		rooms:         make(map[string]models.Room),
		bookings:      make(map[string]models.Booking),
		transactions:  make(map[string]models.Transaction),
		notifications: make(map[string]models.Notification),
	}
}

func (d *memData) clone() *memData {
	c := newMemData()
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.buildings {
		c.buildings[k] = v
	}
	for k, v := range d.rooms {
		c.rooms[k] = v
	}
	for k, v := range d.bookings {
		c.bookings[k] = v
	}
	for k, v := range d.transactions {
		c.transactions[k] = v
	}
	for k, v := range d.notifications {
		c.notifications[k] = v
	}
	return c
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mu:   &sync.Mutex{},
		data: newMemData(),
	}
}

// lock không làm gì khi store đã nằm trong Tx (lock bên ngoài đang giữ)
func (s *MemoryStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *MemoryStore) Tx(ctx context.Context, fn func(Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.data.clone()
	txStore := &MemoryStore{mu: s.mu, data: staged, inTx: true}
	if err := fn(txStore); err != nil {
		return err
	}
	s.data = staged
	return nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	defer s.lock()()
	user, ok := s.data.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStore) SaveUser(ctx context.Context, user *models.User) error {
	defer s.lock()()
	if user.ID == "" {
		user.ID = uuid.NewString()
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = time.Now()
	s.data.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) GetBuilding(ctx context.Context, id string) (*models.Building, error) {
	defer s.lock()()
	building, ok := s.data.buildings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &building, nil
}

func (s *MemoryStore) ListBuildings(ctx context.Context) ([]models.Building, error) {
	defer s.lock()()
	buildings := make([]models.Building, 0, len(s.data.buildings))
	for _, b := range s.data.buildings {
		buildings = append(buildings, b)
	}
	sort.Slice(buildings, func(i, j int) bool { return buildings[i].ID < buildings[j].ID })
	return buildings, nil
}

func (s *MemoryStore) ListBuildingsByOwner(ctx context.Context, ownerID string) ([]models.Building, error) {
	defer s.lock()()
	var buildings []models.Building
	for _, b := range s.data.buildings {
		if b.OwnerID == ownerID {
			buildings = append(buildings, b)
		}
	}
	sort.Slice(buildings, func(i, j int) bool { return buildings[i].ID < buildings[j].ID })
	return buildings, nil
}

func (s *MemoryStore) SaveBuilding(ctx context.Context, building *models.Building) error {
	defer s.lock()()
	if building.ID == "" {
		building.ID = uuid.NewString()
		building.CreatedAt = time.Now()
	}
	building.UpdatedAt = time.Now()
	s.data.buildings[building.ID] = *building
	return nil
}

func (s *MemoryStore) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	defer s.lock()()
	room, ok := s.data.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &room, nil
}

func (s *MemoryStore) ListRoomsByBuilding(ctx context.Context, buildingID string) ([]models.Room, error) {
	defer s.lock()()
	var rooms []models.Room
	for _, r := range s.data.rooms {
		if r.BuildingID == buildingID {
			rooms = append(rooms, r)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (s *MemoryStore) SaveRoom(ctx context.Context, room *models.Room) error {
	defer s.lock()()
	if room.ID == "" {
		room.ID = uuid.NewString()
		room.CreatedAt = time.Now()
	}
	room.UpdatedAt = time.Now()
	s.data.rooms[room.ID] = *room
	return nil
}

func (s *MemoryStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	defer s.lock()()
	booking, ok := s.data.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &booking, nil
}

func (s *MemoryStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	defer s.lock()()
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	s.data.bookings[booking.ID] = *booking
	return nil
}

func (s *MemoryStore) UpdateBookingStatus(ctx context.Context, id, from, to string) error {
	defer s.lock()()
	booking, ok := s.data.bookings[id]
	if !ok || booking.Status != from {
		return ErrStateConflict
	}
	booking.Status = to
	booking.UpdatedAt = time.Now()
	s.data.bookings[id] = booking
	return nil
}

func (s *MemoryStore) ListBookingsByTenant(ctx context.Context, userID string) ([]models.Booking, error) {
	defer s.lock()()
	var bookings []models.Booking
	for _, b := range s.data.bookings {
		if b.UserID == userID {
			bookings = append(bookings, b)
		}
	}
	sortBookingsNewestFirst(bookings)
	return bookings, nil
}

func (s *MemoryStore) ListBookingsByBuildings(ctx context.Context, buildingIDs []string) ([]models.Booking, error) {
	defer s.lock()()
	wanted := make(map[string]bool, len(buildingIDs))
	for _, id := range buildingIDs {
		wanted[id] = true
	}
	bookings := []models.Booking{}
	for _, b := range s.data.bookings {
		if wanted[b.BuildingID] {
			bookings = append(bookings, b)
		}
	}
	sortBookingsNewestFirst(bookings)
	return bookings, nil
}

func (s *MemoryStore) ListPendingBookingsBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	defer s.lock()()
	var bookings []models.Booking
	for _, b := range s.data.bookings {
		if b.Status == constants.BookingStatusPending && b.CreatedAt.Before(cutoff) {
			bookings = append(bookings, b)
		}
	}
	sortBookingsNewestFirst(bookings)
	return bookings, nil
}

func sortBookingsNewestFirst(bookings []models.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}

func (s *MemoryStore) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	defer s.lock()()
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	txn.CreatedAt = time.Now()
	txn.UpdatedAt = txn.CreatedAt
	s.data.transactions[txn.ID] = *txn
	return nil
}

func (s *MemoryStore) GetPendingRentPayment(ctx context.Context, bookingID string) (*models.Transaction, error) {
	defer s.lock()()
	for _, txn := range s.data.transactions {
		if txn.BookingID == bookingID &&
			txn.Type == constants.TransactionTypeRentPayment &&
			txn.Status == constants.TransactionStatusPending {
			return &txn, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) SettleTransaction(ctx context.Context, id, newStatus string) error {
	defer s.lock()()
	txn, ok := s.data.transactions[id]
	if !ok || txn.Status != constants.TransactionStatusPending {
		return ErrStateConflict
	}
	txn.Status = newStatus
	txn.UpdatedAt = time.Now()
	s.data.transactions[id] = txn
	return nil
}

func (s *MemoryStore) ListTransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	defer s.lock()()
	txns := []models.Transaction{}
	for _, txn := range s.data.transactions {
		if txn.UserID == userID {
			txns = append(txns, txn)
		}
	}
	sort.Slice(txns, func(i, j int) bool { return txns[i].CreatedAt.After(txns[j].CreatedAt) })
	return txns, nil
}

func (s *MemoryStore) ListCompletedTransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	defer s.lock()()
	txns := []models.Transaction{}
	for _, txn := range s.data.transactions {
		if txn.UserID == userID && txn.Status == constants.TransactionStatusCompleted {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func (s *MemoryStore) CreateNotification(ctx context.Context, notification *models.Notification) error {
	defer s.lock()()
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	notification.CreatedAt = time.Now()
	s.data.notifications[notification.ID] = *notification
	return nil
}

func (s *MemoryStore) ListNotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	defer s.lock()()
	notifications := []models.Notification{}
	for _, n := range s.data.notifications {
		if n.UserID == userID {
			notifications = append(notifications, n)
		}
	}
	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (s *MemoryStore) MarkNotificationRead(ctx context.Context, userID, id string) (*models.Notification, error) {
	defer s.lock()()
	notification, ok := s.data.notifications[id]
	if !ok || notification.UserID != userID {
		return nil, ErrNotFound
	}
	notification.Read = true
	s.data.notifications[id] = notification
	return &notification, nil
}
