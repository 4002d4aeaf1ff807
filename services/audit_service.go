// file: services/audit_service.go
package services

import (
	"encoding/json"
	"log"

	"CFOCup/database"
	"CFOCup/models"
)

// RecordAudit 追加一条审计记录。尽力而为：任何失败只打日志，
// 绝不影响主操作的结果。
func RecordAudit(actorID uint32, actorRole, action, entityType, entityID string, competitionID uint32, meta map[string]interface{}, ip string) {
	metaJSON := ""
	if meta != nil {
		if b, err := json.Marshal(meta); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		ActorID:       actorID,
		ActorRole:     actorRole,
		Action:        action,
		EntityType:    entityType,
		EntityID:      entityID,
		CompetitionID: competitionID,
		Meta:          metaJSON,
		IPAddress:     ip,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("Audit log error (ignored): %v", err)
	}
}
