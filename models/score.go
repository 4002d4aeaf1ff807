// file: models/score.go
package models

import (
	"time"
)

// ScoreEntry 单个评委对单个提交在单个维度上的打分，
// (submission, criterion, judge) 唯一，重复提交即覆盖。
type ScoreEntry struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	SubmissionID uint64    `gorm:"not null;uniqueIndex:unique_sub_crit_judge" json:"submission_id"`
	CriterionID  uint32    `gorm:"not null;uniqueIndex:unique_sub_crit_judge" json:"criterion_id"`
	JudgeID      uint32    `gorm:"not null;uniqueIndex:unique_sub_crit_judge" json:"judge_id"`
	Score        float64   `gorm:"not null" json:"score"`
	Feedback     string    `gorm:"type:text" json:"feedback"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

func (ScoreEntry) TableName() string {
	return "cfocup_task_score_entries"
}

// JudgeScore 单个评委对单个提交的加权总分，始终由当前的
// ScoreEntry 行重新计算得出，绝不手工改写。
// IsFinal 只允许 false -> true，定稿后计入聚合。
type JudgeScore struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	SubmissionID    uint64    `gorm:"not null;uniqueIndex:unique_sub_judge" json:"submission_id"`
	JudgeID         uint32    `gorm:"not null;uniqueIndex:unique_sub_judge" json:"judge_id"`
	WeightedTotal   float64   `gorm:"not null" json:"weighted_total"`
	OverallFeedback string    `gorm:"type:text" json:"overall_feedback"`
	IsFinal         bool      `gorm:"not null;default:0" json:"is_final"`
	ScoredAt        time.Time `json:"scored_at"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

func (JudgeScore) TableName() string {
	return "cfocup_task_submission_scores"
}
