// Package testutil provides in-memory repository implementations so the
// service and handler tests run without a database.
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"hubtrack/internal/entity"
	"hubtrack/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]entity.User
	order []uuid.UUID
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uuid.UUID]entity.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	r.order = append(r.order, user.ID)
	return nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == utils.NormalizeEmail(email) {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) FindActiveByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == utils.NormalizeEmail(email) && user.IsActive {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) List(_ context.Context, limit, offset int) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []entity.User
	for _, id := range r.order {
		users = append(users, r.users[id])
	}
	return paginate(users, limit, offset), nil
}

func (r *MemoryUserRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type MemoryRecordRepository struct {
	mu      sync.Mutex
	records map[uuid.UUID]entity.HubRecord
	order   []uuid.UUID
}

func NewMemoryRecordRepository() *MemoryRecordRepository {
	return &MemoryRecordRepository{records: make(map[uuid.UUID]entity.HubRecord)}
}

// Stored returns the raw persisted row, ciphertext and all. Test-only
// escape hatch for asserting at-rest state.
func (r *MemoryRecordRepository) Stored(id uuid.UUID) (entity.HubRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	return record, ok
}

func (r *MemoryRecordRepository) Create(_ context.Context, record *entity.HubRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.records[record.ID] = *record
	r.order = append(r.order, record.ID)
	return nil
}

func (r *MemoryRecordRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.HubRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (r *MemoryRecordRepository) Update(_ context.Context, record *entity.HubRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.UpdatedAt = time.Now()
	r.records[record.ID] = *record
	return nil
}

func (r *MemoryRecordRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRecordRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]entity.HubRecord, error) {
	return r.filter(func(record *entity.HubRecord) bool {
		return record.UserID == ownerID
	}), nil
}

func (r *MemoryRecordRepository) ListByOwnerAndStatus(_ context.Context, ownerID uuid.UUID, status entity.RecordStatus) ([]entity.HubRecord, error) {
	return r.filter(func(record *entity.HubRecord) bool {
		return record.UserID == ownerID && record.Status == status
	}), nil
}

func (r *MemoryRecordRepository) Search(_ context.Context, ownerID uuid.UUID, query string) ([]entity.HubRecord, error) {
	q := strings.ToLower(query)
	return r.filter(func(record *entity.HubRecord) bool {
		if record.UserID != ownerID {
			return false
		}
		for _, field := range []string{
			record.EntityName,
			record.ProductName,
			record.SerialNumber,
			record.BatchSKU,
			string(record.Status),
			record.ID.String(),
		} {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	}), nil
}

func (r *MemoryRecordRepository) ListAll(_ context.Context, status entity.RecordStatus, limit, offset int) ([]entity.HubRecord, int64, error) {
	matched := r.filter(func(record *entity.HubRecord) bool {
		return status == "" || record.Status == status
	})
	return paginate(matched, limit, offset), int64(len(matched)), nil
}

func (r *MemoryRecordRepository) CountByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	return int64(len(r.filter(func(record *entity.HubRecord) bool {
		return record.UserID == ownerID
	}))), nil
}

func (r *MemoryRecordRepository) CountByStatuses(_ context.Context, statuses []entity.RecordStatus) (int64, error) {
	return int64(len(r.filter(func(record *entity.HubRecord) bool {
		for _, status := range statuses {
			if record.Status == status {
				return true
			}
		}
		return false
	}))), nil
}

func (r *MemoryRecordRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.records)), nil
}

func (r *MemoryRecordRepository) SumAmountPaid(_ context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	for _, record := range r.records {
		sum += record.AmountPaid
	}
	return sum, nil
}

func (r *MemoryRecordRepository) filter(keep func(*entity.HubRecord) bool) []entity.HubRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	var records []entity.HubRecord
	for _, id := range r.order {
		record := r.records[id]
		if keep(&record) {
			records = append(records, record)
		}
	}
	return records
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
