// file: models/submission.go
package models

import (
	"time"
)

type SubmissionStatus string

const (
	SubmissionStatusSubmitted SubmissionStatus = "submitted"
	SubmissionStatusLocked    SubmissionStatus = "locked"
)

// Submission 对应 cfocup_task_submission 表。
// (task_id, team_id) 上的唯一索引保证同一任务每队只有一行，
// 重复提交通过幂等 upsert 原地覆盖。
type Submission struct {
	ID            uint64           `gorm:"primarykey" json:"id"`
	CompetitionID uint32           `gorm:"not null;index" json:"competition_id"`
	TaskID        uint32           `gorm:"not null;uniqueIndex:unique_task_team" json:"task_id"`
	TeamID        uint32           `gorm:"not null;uniqueIndex:unique_task_team" json:"team_id"`
	Level         int              `gorm:"not null" json:"level"`
	FileName      string           `gorm:"size:255;not null" json:"file_name"`
	FileRef       string           `gorm:"size:512;not null" json:"file_ref"`
	FileSize      uint64           `gorm:"default:0" json:"file_size"`
	FileHash      string           `gorm:"size:64;not null" json:"file_hash"`
	SubmittedBy   uint32           `gorm:"not null" json:"submitted_by"`
	SubmittedAt   time.Time        `json:"submitted_at"`
	Status        SubmissionStatus `gorm:"type:enum('submitted','locked');default:'submitted'" json:"status"`
	LockedAt      *time.Time       `json:"locked_at,omitempty"`
	CreatedAt     time.Time        `json:"created_at,omitempty"`
	UpdatedAt     time.Time        `json:"updated_at,omitempty"`
}

func (Submission) TableName() string {
	return "cfocup_task_submission"
}
