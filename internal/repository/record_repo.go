package repository

import (
	"context"
	"errors"
	"strings"

	"hubtrack/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// searchClause matches the dashboard free-text search: case-insensitive
// substring over the plaintext columns only. Encrypted contact fields are
// excluded because their ciphertext is randomized.
const searchClause = `lower(entity_name) LIKE @q OR lower(product_name) LIKE @q ` +
	`OR lower(serial_number) LIKE @q OR lower(batch_sku) LIKE @q ` +
	`OR lower(status) LIKE @q OR lower(id::text) LIKE @q`

type RecordRepository interface {
	Create(ctx context.Context, record *entity.HubRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.HubRecord, error)
	Update(ctx context.Context, record *entity.HubRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.HubRecord, error)
	ListByOwnerAndStatus(ctx context.Context, ownerID uuid.UUID, status entity.RecordStatus) ([]entity.HubRecord, error)
	Search(ctx context.Context, ownerID uuid.UUID, query string) ([]entity.HubRecord, error)
	ListAll(ctx context.Context, status entity.RecordStatus, limit, offset int) ([]entity.HubRecord, int64, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	CountByStatuses(ctx context.Context, statuses []entity.RecordStatus) (int64, error)
	Count(ctx context.Context) (int64, error)
	SumAmountPaid(ctx context.Context) (float64, error)
}

type recordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Create(ctx context.Context, record *entity.HubRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *recordRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.HubRecord, error) {
	var record entity.HubRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *recordRepository) Update(ctx context.Context, record *entity.HubRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *recordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.HubRecord{}, "id = ?", id).Error
}

func (r *recordRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.HubRecord, error) {
	var records []entity.HubRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *recordRepository) ListByOwnerAndStatus(ctx context.Context, ownerID uuid.UUID, status entity.RecordStatus) ([]entity.HubRecord, error) {
	var records []entity.HubRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", ownerID, status).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *recordRepository) Search(ctx context.Context, ownerID uuid.UUID, query string) ([]entity.HubRecord, error) {
	var records []entity.HubRecord
	like := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Where(searchClause, map[string]any{"q": like}).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *recordRepository) ListAll(ctx context.Context, status entity.RecordStatus, limit, offset int) ([]entity.HubRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.HubRecord{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var records []entity.HubRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *recordRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.HubRecord{}).
		Where("user_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

func (r *recordRepository) CountByStatuses(ctx context.Context, statuses []entity.RecordStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.HubRecord{}).
		Where("status IN ?", statuses).
		Count(&count).Error
	return count, err
}

func (r *recordRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.HubRecord{}).Count(&count).Error
	return count, err
}

func (r *recordRepository) SumAmountPaid(ctx context.Context) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).
		Model(&entity.HubRecord{}).
		Select("COALESCE(SUM(amount_paid), 0)").
		Scan(&sum).Error
	return sum, err
}
