// file: dto/competition.go
package dto

import "time"

type UpsertCompetitionReq struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	Level2Deadline *time.Time `json:"level_2_deadline"`
	Level3Deadline *time.Time `json:"level_3_deadline"`
	Level4Deadline *time.Time `json:"level_4_deadline"`
}

type SetLevelReq struct {
	Level int `json:"level" binding:"required,min=1,max=4"`
}
