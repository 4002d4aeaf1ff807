// file: models/audit_log.go
package models

import (
	"time"
)

// AuditLog 追加式审计记录，写入失败只记日志、绝不阻塞主操作
type AuditLog struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	ActorID       uint32    `gorm:"not null" json:"actor_id"`
	ActorRole     string    `gorm:"size:20;not null" json:"actor_role"`
	Action        string    `gorm:"size:50;not null" json:"action"`
	EntityType    string    `gorm:"size:50;not null" json:"entity_type"`
	EntityID      string    `gorm:"size:50" json:"entity_id"`
	CompetitionID uint32    `gorm:"index" json:"competition_id"`
	Meta          string    `gorm:"type:text" json:"meta"`
	IPAddress     string    `gorm:"size:45" json:"ip_address"`
	CreatedAt     time.Time `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "cfocup_audit_log"
}
