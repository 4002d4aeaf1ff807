// file: models/team.go
package models

import (
	"time"
)

// 队伍的组建/聊天等机制不在本服务范围内，这里只保留
// 门控和申诉校验所需的最小字段。
type Team struct {
	ID            uint32       `gorm:"primarykey" json:"id"`
	CompetitionID uint32       `gorm:"not null;index" json:"competition_id"`
	TeamName      string       `gorm:"size:100;not null" json:"team_name"`
	LeaderID      uint32       `gorm:"not null" json:"leader_id"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Members       []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

func (Team) TableName() string {
	return "cfocup_team"
}
