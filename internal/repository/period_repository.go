package repository

import (
	"errors"

	"github.com/tamaki/restaurant-ops-api/internal/models"
	"gorm.io/gorm"
)

// ErrPeriodInUse is returned when deleting a period that still owns tasks.
var ErrPeriodInUse = errors.New("period still has task definitions")

// GormPeriodRepository is a GORM implementation of PeriodRepository
type GormPeriodRepository struct {
	db *gorm.DB
}

// NewPeriodRepository creates a new PeriodRepository
func NewPeriodRepository(db *gorm.DB) PeriodRepository {
	return &GormPeriodRepository{db: db}
}

// List returns all periods ordered by display order
func (r *GormPeriodRepository) List() ([]models.Period, error) {
	var periods []models.Period
	if err := r.db.Order("display_order").Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

// FindByID finds a period by ID
func (r *GormPeriodRepository) FindByID(id uint64) (*models.Period, error) {
	var period models.Period
	if err := r.db.First(&period, id).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

// FindByCode finds a period by its slug
func (r *GormPeriodRepository) FindByCode(code string) (*models.Period, error) {
	var period models.Period
	if err := r.db.Where("code = ?", code).First(&period).Error; err != nil {
		return nil, err
	}
	return &period, nil
}

// Create creates a new period
func (r *GormPeriodRepository) Create(period *models.Period) error {
	return r.db.Create(period).Error
}

// Update updates a period
func (r *GormPeriodRepository) Update(period *models.Period) error {
	return r.db.Save(period).Error
}

// Delete removes a period; fails while task definitions still reference it
func (r *GormPeriodRepository) Delete(id uint64) error {
	var count int64
	if err := r.db.Model(&models.TaskDefinition{}).Where("period_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrPeriodInUse
	}
	return r.db.Delete(&models.Period{}, id).Error
}
