// file: models/snapshot.go
package models

import (
	"time"
)

// LeaderboardSnapshot 对应 cfocup_leaderboard_snapshot 缓存表。
// 公布成绩时整表按比赛替换，绝不做局部修补；公布后的榜单
// 读取始终走这里而不是实时重算。
type LeaderboardSnapshot struct {
	ID               uint       `gorm:"primarykey" json:"-"`
	CompetitionID    uint32     `gorm:"not null;uniqueIndex:unique_comp_team" json:"competition_id"`
	TeamID           uint32     `gorm:"not null;uniqueIndex:unique_comp_team" json:"team_id"`
	TeamName         string     `gorm:"size:100;not null" json:"team_name"`
	Level2Score      float64    `gorm:"column:level_2_score;not null;default:0" json:"level_2_score"`
	Level3Score      float64    `gorm:"column:level_3_score;not null;default:0" json:"level_3_score"`
	Level4Score      float64    `gorm:"column:level_4_score;not null;default:0" json:"level_4_score"`
	CumulativeScore  float64    `gorm:"not null;default:0" json:"cumulative_score"`
	TasksCompleted   uint       `gorm:"not null;default:0" json:"tasks_completed"`
	LastSubmissionAt *time.Time `json:"last_submission_at"`
	FinalRank        uint       `gorm:"not null" json:"final_rank"`
	PublishedAt      time.Time  `json:"published_at"`
}

func (LeaderboardSnapshot) TableName() string {
	return "cfocup_leaderboard_snapshot"
}
