package models

import (
	"time"

	"gorm.io/gorm"
)

type SubmissionKind string

const (
	KindNone      SubmissionKind = "none"
	KindPhoto     SubmissionKind = "photo"
	KindAudio     SubmissionKind = "audio"
	KindText      SubmissionKind = "text"
	KindChecklist SubmissionKind = "checklist"
	KindInventory SubmissionKind = "inventory"
)

// TaskDefinition is a unit of scheduled work owned by exactly one role.
// A nil PeriodID marks a floating task (submittable any time). Notices and
// floating tasks never count toward completion denominators.
type TaskDefinition struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Role         StaffRole      `gorm:"type:varchar(20);not null;index" json:"role"`
	Kind         SubmissionKind `gorm:"type:varchar(20);not null;default:'none'" json:"kind"`
	IsNotice     bool           `gorm:"not null;default:false" json:"is_notice"`
	IsFloating   bool           `gorm:"not null;default:false" json:"is_floating"`
	PeriodID     *uint64        `gorm:"index" json:"period_id"`
	DisplayOrder int            `gorm:"not null;default:0" json:"display_order"`

	// ReviewOfTaskID links a manager "review" task to the duty-manager task
	// it signs off. When the linked task has an approved submission for the
	// date, the review task counts as completed too.
	ReviewOfTaskID *uint64 `json:"review_of_task_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Period       *Period         `gorm:"foreignKey:PeriodID" json:"period,omitempty"`
	ReviewOfTask *TaskDefinition `gorm:"foreignKey:ReviewOfTaskID" json:"review_of_task,omitempty"`
}

// Countable reports whether the task belongs in a completion denominator.
func (t TaskDefinition) Countable() bool {
	return !t.IsNotice && !t.IsFloating && t.PeriodID != nil
}
