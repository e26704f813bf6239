package repository

import (
	"github.com/tamaki/restaurant-ops-api/internal/models"
	"gorm.io/gorm"
)

// GormMissingTaskRepository is a GORM implementation of MissingTaskRepository
type GormMissingTaskRepository struct {
	db *gorm.DB
}

// NewMissingTaskRepository creates a new MissingTaskRepository
func NewMissingTaskRepository(db *gorm.DB) MissingTaskRepository {
	return &GormMissingTaskRepository{db: db}
}

// ReplaceForDate atomically replaces all records for a business date.
// Delete-then-insert keeps the rollover job idempotent per date.
func (r *GormMissingTaskRepository) ReplaceForDate(businessDate string, records []models.MissingTaskRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_date = ?", businessDate).
			Delete(&models.MissingTaskRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
}

// ListByDate lists records for a business date
func (r *GormMissingTaskRepository) ListByDate(businessDate string) ([]models.MissingTaskRecord, error) {
	var records []models.MissingTaskRecord
	if err := r.db.
		Where("business_date = ?", businessDate).
		Preload("TaskDefinition").
		Order("role, period_code").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListByDateRange lists records between two business dates inclusive
func (r *GormMissingTaskRepository) ListByDateRange(from, to string) ([]models.MissingTaskRecord, error) {
	var records []models.MissingTaskRecord
	if err := r.db.
		Where("business_date >= ? AND business_date <= ?", from, to).
		Preload("TaskDefinition").
		Order("business_date, role, period_code").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
