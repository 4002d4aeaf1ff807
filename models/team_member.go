// file: models/team_member.go
package models

import "time"

// TeamMember 队伍成员关系。花名册的增删由外部协作方维护，
// 这里只做门控与申诉时的归属校验。
type TeamMember struct {
	ID       uint32    `gorm:"primarykey" json:"id"`
	TeamID   uint32    `gorm:"uniqueIndex:unique_team_user;not null" json:"team_id"`
	UserID   uint32    `gorm:"uniqueIndex:unique_team_user;not null" json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

func (TeamMember) TableName() string {
	return "cfocup_team_members"
}
