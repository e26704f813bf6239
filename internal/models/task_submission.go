package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// TaskSubmission is one instance of a task being completed on a business
// date. Rejected rows are soft-deleted on resubmission so at most one live
// row exists per (task, date). DeletedAt participates in the unique index
// (live rows hold 0, retired rows a millisecond stamp) so the database
// enforces that invariant even under concurrent submits.
type TaskSubmission struct {
	ID               uint64                `gorm:"primarykey" json:"id"`
	TaskDefinitionID uint64                `gorm:"not null;uniqueIndex:idx_submissions_task_date" json:"task_definition_id"`
	BusinessDate     string                `gorm:"type:varchar(10);not null;uniqueIndex:idx_submissions_task_date;index" json:"business_date"`
	SubmittedByID    uint64                `gorm:"not null" json:"submitted_by_id"`
	SubmittedAt      time.Time             `gorm:"not null" json:"submitted_at"`
	IsLate           bool                  `gorm:"not null;default:false" json:"is_late"`
	ReviewStatus     ReviewStatus          `gorm:"type:varchar(20);not null;default:'pending'" json:"review_status"`
	Kind             SubmissionKind        `gorm:"type:varchar(20);not null" json:"kind"`
	TextContent      string                `gorm:"type:text" json:"text_content"`
	PhotoURL         string                `gorm:"type:varchar(512)" json:"photo_url"`
	ChecklistData    datatypes.JSON        `json:"checklist_data"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
	DeletedAt        soft_delete.DeletedAt `gorm:"softDelete:milli;uniqueIndex:idx_submissions_task_date" json:"-"`

	// Relations
	TaskDefinition TaskDefinition `gorm:"foreignKey:TaskDefinitionID" json:"task_definition,omitempty"`
	SubmittedBy    User           `gorm:"foreignKey:SubmittedByID" json:"submitted_by,omitempty"`
}
