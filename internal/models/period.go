package models

import "time"

// Period is a named time-window within the repeating daily business cycle.
// StartTime and EndTime are wall-clock "HH:MM" strings; EndTime earlier than
// StartTime means the window wraps past midnight. Periods are configuration:
// they never change during a business day.
type Period struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	Code          string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	StartTime     string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime       string    `gorm:"type:varchar(5);not null" json:"end_time"`
	DisplayOrder  int       `gorm:"not null" json:"display_order"`
	IsEventDriven bool      `gorm:"not null;default:false" json:"is_event_driven"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Tasks []TaskDefinition `gorm:"foreignKey:PeriodID" json:"tasks,omitempty"`
}
