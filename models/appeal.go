// file: models/appeal.go
package models

import (
	"time"
)

type AppealStatus string

const (
	AppealStatusPending  AppealStatus = "pending"
	AppealStatusAdjusted AppealStatus = "adjusted"
	AppealStatusRejected AppealStatus = "rejected"
)

// Appeal 对评分结果的申诉。OriginalScore 在创建时从聚合器
// 取当前值并冻结；状态机 pending -> {adjusted, rejected}，终态不可重开。
// adjusted 时 AdjustedScore 作为覆盖值参与后续聚合。
type Appeal struct {
	ID            uint64       `gorm:"primarykey" json:"id"`
	SubmissionID  uint64       `gorm:"not null;index" json:"submission_id"`
	CompetitionID uint32       `gorm:"not null;index" json:"competition_id"`
	TeamID        uint32       `gorm:"not null" json:"team_id"`
	AppellantID   uint32       `gorm:"not null" json:"appellant_id"`
	Reason        string       `gorm:"type:text;not null" json:"reason"`
	OriginalScore *float64     `json:"original_score"`
	Status        AppealStatus `gorm:"type:enum('pending','adjusted','rejected');default:'pending'" json:"appeal_status"`
	AdjustedScore *float64     `json:"adjusted_score,omitempty"`
	ReviewNotes   string       `gorm:"type:text" json:"review_notes,omitempty"`
	ReviewedBy    *uint32      `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time   `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

func (Appeal) TableName() string {
	return "cfocup_score_appeals"
}
