package repository

import (
	"github.com/tamaki/restaurant-ops-api/internal/models"
	"gorm.io/gorm"
)

// GormSubmissionRepository is a GORM implementation of SubmissionRepository
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// Create creates a new submission
func (r *GormSubmissionRepository) Create(submission *models.TaskSubmission) error {
	return r.db.Create(submission).Error
}

// FindByID finds a submission by ID with optional preloading
func (r *GormSubmissionRepository) FindByID(id uint64, preload ...string) (*models.TaskSubmission, error) {
	var submission models.TaskSubmission
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&submission, id).Error; err != nil {
		return nil, err
	}

	return &submission, nil
}

// FindActive finds the live submission for a task on a business date
func (r *GormSubmissionRepository) FindActive(taskDefinitionID uint64, businessDate string) (*models.TaskSubmission, error) {
	var submission models.TaskSubmission
	if err := r.db.
		Where("task_definition_id = ? AND business_date = ?", taskDefinitionID, businessDate).
		First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// ListByDate lists all live submissions for a business date
func (r *GormSubmissionRepository) ListByDate(businessDate string) ([]models.TaskSubmission, error) {
	var submissions []models.TaskSubmission
	if err := r.db.
		Where("business_date = ?", businessDate).
		Preload("TaskDefinition").
		Preload("SubmittedBy").
		Order("submitted_at").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// ListByDateRange lists live submissions between two business dates inclusive
func (r *GormSubmissionRepository) ListByDateRange(from, to string) ([]models.TaskSubmission, error) {
	var submissions []models.TaskSubmission
	if err := r.db.
		Where("business_date >= ? AND business_date <= ?", from, to).
		Order("business_date, submitted_at").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

// Update updates a submission
func (r *GormSubmissionRepository) Update(submission *models.TaskSubmission) error {
	return r.db.Save(submission).Error
}

// Delete soft deletes a submission
func (r *GormSubmissionRepository) Delete(id uint64) error {
	return r.db.Delete(&models.TaskSubmission{}, id).Error
}
