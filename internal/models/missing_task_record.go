package models

import "time"

// MissingTaskRecord is the settled "this task was never done" row written by
// the business-day rollover job. One row per (date, task); the job replaces
// a date's rows wholesale so reruns are idempotent.
type MissingTaskRecord struct {
	ID               uint64    `gorm:"primarykey" json:"id"`
	BusinessDate     string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_missing_date_task" json:"business_date"`
	TaskDefinitionID uint64    `gorm:"not null;uniqueIndex:idx_missing_date_task" json:"task_definition_id"`
	PeriodCode       string    `gorm:"type:varchar(50);not null" json:"period_code"`
	PeriodName       string    `gorm:"type:varchar(255);not null" json:"period_name"`
	Role             StaffRole `gorm:"type:varchar(20);not null;index" json:"role"`
	RecordedAt       time.Time `gorm:"not null" json:"recorded_at"`

	// Relations
	TaskDefinition TaskDefinition `gorm:"foreignKey:TaskDefinitionID" json:"task_definition,omitempty"`
}
