// file: models/judge_assignment.go
package models

import (
	"time"
)

// JudgeAssignment 评委与比赛的分配关系。评分接口每次都会
// 重新校验这里的 is_active，而不是只信任 JWT 中的角色。
type JudgeAssignment struct {
	ID            uint32    `gorm:"primarykey" json:"id"`
	CompetitionID uint32    `gorm:"not null;uniqueIndex:unique_comp_judge" json:"competition_id"`
	JudgeID       uint32    `gorm:"not null;uniqueIndex:unique_comp_judge" json:"judge_id"`
	AssignedBy    uint32    `gorm:"not null" json:"assigned_by"`
	Notes         string    `gorm:"size:255" json:"notes"`
	IsActive      bool      `gorm:"not null;default:1" json:"is_active"`
	AssignedAt    time.Time `json:"assigned_at"`
}

func (JudgeAssignment) TableName() string {
	return "cfocup_judge_assignments"
}
