package dto

import (
	"time"

	"github.com/tamaki/restaurant-ops-api/internal/models"
	"github.com/tamaki/restaurant-ops-api/internal/schedule"
	"github.com/tamaki/restaurant-ops-api/internal/services"
	"gorm.io/datatypes"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64           `json:"id"`
	Username string           `json:"username"`
	Role     models.StaffRole `json:"role"`
}

// PeriodDTO represents a period in API responses
type PeriodDTO struct {
	ID            uint64 `json:"id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	DisplayOrder  int    `json:"display_order"`
	IsEventDriven bool   `json:"is_event_driven"`
}

// TaskDefinitionDTO represents a task definition in API responses
type TaskDefinitionDTO struct {
	ID             uint64                `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Role           models.StaffRole      `json:"role"`
	Kind           models.SubmissionKind `json:"kind"`
	IsNotice       bool                  `json:"is_notice"`
	IsFloating     bool                  `json:"is_floating"`
	PeriodID       *uint64               `json:"period_id"`
	DisplayOrder   int                   `json:"display_order"`
	ReviewOfTaskID *uint64               `json:"review_of_task_id,omitempty"`
	Period         *PeriodDTO            `json:"period,omitempty"`
}

// SubmissionDTO represents a task submission in API responses
type SubmissionDTO struct {
	ID               uint64                `json:"id"`
	TaskDefinitionID uint64                `json:"task_definition_id"`
	BusinessDate     string                `json:"business_date"`
	SubmittedAt      time.Time             `json:"submitted_at"`
	IsLate           bool                  `json:"is_late"`
	ReviewStatus     models.ReviewStatus   `json:"review_status"`
	Kind             models.SubmissionKind `json:"kind"`
	TextContent      string                `json:"text_content,omitempty"`
	PhotoURL         string                `json:"photo_url,omitempty"`
	ChecklistData    datatypes.JSON        `json:"checklist_data,omitempty"`
	SubmittedBy      *UserDTO              `json:"submitted_by,omitempty"`
	TaskDefinition   *TaskDefinitionDTO    `json:"task_definition,omitempty"`
}

// MissingTaskDTO represents one outstanding task in a snapshot
type MissingTaskDTO struct {
	Task       TaskDefinitionDTO `json:"task"`
	PeriodCode string            `json:"period_code"`
	PeriodName string            `json:"period_name"`
}

// SnapshotDTO represents a completion snapshot in API responses
type SnapshotDTO struct {
	CurrentPeriod       *PeriodDTO       `json:"current_period"`
	TotalTasksDue       int              `json:"total_tasks_due"`
	TotalTasksCompleted int              `json:"total_tasks_completed"`
	CompletionRate      int              `json:"completion_rate"`
	MissingTasks        []MissingTaskDTO `json:"missing_tasks"`
}

// BoardTaskDTO represents a task with its completion state
type BoardTaskDTO struct {
	Task       TaskDefinitionDTO `json:"task"`
	Completed  bool              `json:"completed"`
	Submission *SubmissionDTO    `json:"submission,omitempty"`
}

// BoardPeriodDTO groups a period's tasks on the board
type BoardPeriodDTO struct {
	Period    PeriodDTO      `json:"period"`
	IsCurrent bool           `json:"is_current"`
	Tasks     []BoardTaskDTO `json:"tasks"`
}

// BoardDTO represents the period-grouped task list for a role
type BoardDTO struct {
	Role          models.StaffRole `json:"role"`
	BusinessDate  string           `json:"business_date"`
	CurrentPeriod *PeriodDTO       `json:"current_period"`
	Periods       []BoardPeriodDTO `json:"periods"`
	Floating      []BoardTaskDTO   `json:"floating"`
}

// MissingTaskRecordDTO represents a settled missing-task row
type MissingTaskRecordDTO struct {
	ID           uint64             `json:"id"`
	BusinessDate string             `json:"business_date"`
	PeriodCode   string             `json:"period_code"`
	PeriodName   string             `json:"period_name"`
	Role         models.StaffRole   `json:"role"`
	RecordedAt   time.Time          `json:"recorded_at"`
	Task         *TaskDefinitionDTO `json:"task,omitempty"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}

// ToPeriodDTO converts a Period model to PeriodDTO
func ToPeriodDTO(period models.Period) PeriodDTO {
	return PeriodDTO{
		ID:            period.ID,
		Code:          period.Code,
		Name:          period.Name,
		StartTime:     period.StartTime,
		EndTime:       period.EndTime,
		DisplayOrder:  period.DisplayOrder,
		IsEventDriven: period.IsEventDriven,
	}
}

// ToPeriodDTOs converts a slice of periods
func ToPeriodDTOs(periods []models.Period) []PeriodDTO {
	dtos := make([]PeriodDTO, 0, len(periods))
	for _, p := range periods {
		dtos = append(dtos, ToPeriodDTO(p))
	}
	return dtos
}

// ToTaskDefinitionDTO converts a TaskDefinition model to TaskDefinitionDTO
func ToTaskDefinitionDTO(def models.TaskDefinition) TaskDefinitionDTO {
	dto := TaskDefinitionDTO{
		ID:             def.ID,
		Title:          def.Title,
		Description:    def.Description,
		Role:           def.Role,
		Kind:           def.Kind,
		IsNotice:       def.IsNotice,
		IsFloating:     def.IsFloating,
		PeriodID:       def.PeriodID,
		DisplayOrder:   def.DisplayOrder,
		ReviewOfTaskID: def.ReviewOfTaskID,
	}
	if def.Period != nil {
		period := ToPeriodDTO(*def.Period)
		dto.Period = &period
	}
	return dto
}

// ToTaskDefinitionDTOs converts a slice of task definitions
func ToTaskDefinitionDTOs(defs []models.TaskDefinition) []TaskDefinitionDTO {
	dtos := make([]TaskDefinitionDTO, 0, len(defs))
	for _, def := range defs {
		dtos = append(dtos, ToTaskDefinitionDTO(def))
	}
	return dtos
}

// ToSubmissionDTO converts a TaskSubmission model to SubmissionDTO
func ToSubmissionDTO(sub models.TaskSubmission) SubmissionDTO {
	dto := SubmissionDTO{
		ID:               sub.ID,
		TaskDefinitionID: sub.TaskDefinitionID,
		BusinessDate:     sub.BusinessDate,
		SubmittedAt:      sub.SubmittedAt,
		IsLate:           sub.IsLate,
		ReviewStatus:     sub.ReviewStatus,
		Kind:             sub.Kind,
		TextContent:      sub.TextContent,
		PhotoURL:         sub.PhotoURL,
		ChecklistData:    sub.ChecklistData,
	}
	if sub.SubmittedBy.ID != 0 {
		user := ToUserDTO(sub.SubmittedBy)
		dto.SubmittedBy = &user
	}
	if sub.TaskDefinition.ID != 0 {
		task := ToTaskDefinitionDTO(sub.TaskDefinition)
		dto.TaskDefinition = &task
	}
	return dto
}

// ToSubmissionDTOs converts a slice of submissions
func ToSubmissionDTOs(subs []models.TaskSubmission) []SubmissionDTO {
	dtos := make([]SubmissionDTO, 0, len(subs))
	for _, sub := range subs {
		dtos = append(dtos, ToSubmissionDTO(sub))
	}
	return dtos
}

// ToSnapshotDTO converts a schedule.Snapshot to SnapshotDTO
func ToSnapshotDTO(snapshot schedule.Snapshot) SnapshotDTO {
	dto := SnapshotDTO{
		TotalTasksDue:       snapshot.TotalDue,
		TotalTasksCompleted: snapshot.TotalCompleted,
		CompletionRate:      snapshot.CompletionRate,
		MissingTasks:        []MissingTaskDTO{},
	}
	if snapshot.CurrentPeriod != nil {
		period := ToPeriodDTO(*snapshot.CurrentPeriod)
		dto.CurrentPeriod = &period
	}
	for _, missing := range snapshot.MissingTasks {
		dto.MissingTasks = append(dto.MissingTasks, MissingTaskDTO{
			Task:       ToTaskDefinitionDTO(missing.Task),
			PeriodCode: missing.PeriodCode,
			PeriodName: missing.PeriodName,
		})
	}
	return dto
}

// ToBoardDTO converts a services.Board to BoardDTO
func ToBoardDTO(board services.Board) BoardDTO {
	dto := BoardDTO{
		Role:         board.Role,
		BusinessDate: board.BusinessDate,
		Periods:      []BoardPeriodDTO{},
		Floating:     []BoardTaskDTO{},
	}
	if board.CurrentPeriod != nil {
		period := ToPeriodDTO(*board.CurrentPeriod)
		dto.CurrentPeriod = &period
	}
	for _, bp := range board.Periods {
		dto.Periods = append(dto.Periods, BoardPeriodDTO{
			Period:    ToPeriodDTO(bp.Period),
			IsCurrent: bp.IsCurrent,
			Tasks:     toBoardTaskDTOs(bp.Tasks),
		})
	}
	dto.Floating = toBoardTaskDTOs(board.Floating)
	return dto
}

func toBoardTaskDTOs(tasks []services.BoardTask) []BoardTaskDTO {
	dtos := make([]BoardTaskDTO, 0, len(tasks))
	for _, task := range tasks {
		item := BoardTaskDTO{
			Task:      ToTaskDefinitionDTO(task.Definition),
			Completed: task.Completed,
		}
		if task.Submission != nil {
			sub := ToSubmissionDTO(*task.Submission)
			item.Submission = &sub
		}
		dtos = append(dtos, item)
	}
	return dtos
}

// ToMissingTaskRecordDTO converts a MissingTaskRecord model
func ToMissingTaskRecordDTO(record models.MissingTaskRecord) MissingTaskRecordDTO {
	dto := MissingTaskRecordDTO{
		ID:           record.ID,
		BusinessDate: record.BusinessDate,
		PeriodCode:   record.PeriodCode,
		PeriodName:   record.PeriodName,
		Role:         record.Role,
		RecordedAt:   record.RecordedAt,
	}
	if record.TaskDefinition.ID != 0 {
		task := ToTaskDefinitionDTO(record.TaskDefinition)
		dto.Task = &task
	}
	return dto
}

// ToMissingTaskRecordDTOs converts a slice of missing-task records
func ToMissingTaskRecordDTOs(records []models.MissingTaskRecord) []MissingTaskRecordDTO {
	dtos := make([]MissingTaskRecordDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, ToMissingTaskRecordDTO(record))
	}
	return dtos
}
