// file: models/competition.go
package models

import (
	"time"
)

// Competition 对应 cfocup_competition 表。
// current_level / submissions_locked / results_published 是比赛的状态开关，
// 门控判定时整行快照传入，绝不作为进程内共享状态持有。
type Competition struct {
	ID                uint32     `gorm:"primarykey" json:"id,omitempty"`
	Title             string     `gorm:"size:100;not null" json:"title"`
	Description       string     `gorm:"type:text" json:"description"`
	CurrentLevel      int        `gorm:"not null;default:1" json:"current_level"`
	SubmissionsLocked bool       `gorm:"not null;default:0" json:"submissions_locked"`
	ResultsPublished  bool       `gorm:"not null;default:0" json:"results_published"`
	Level2Deadline    *time.Time `gorm:"column:level_2_deadline" json:"level_2_deadline"`
	Level3Deadline    *time.Time `gorm:"column:level_3_deadline" json:"level_3_deadline"`
	Level4Deadline    *time.Time `gorm:"column:level_4_deadline" json:"level_4_deadline"`
	CreatedAt         time.Time  `json:"created_at,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at,omitempty"`
}

func (Competition) TableName() string {
	return "cfocup_competition"
}

// LevelDeadline 返回指定关卡的截止时间，没有配置则为 nil
func (c *Competition) LevelDeadline(level int) *time.Time {
	switch level {
	case 2:
		return c.Level2Deadline
	case 3:
		return c.Level3Deadline
	case 4:
		return c.Level4Deadline
	}
	return nil
}
