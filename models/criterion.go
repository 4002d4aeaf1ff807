// file: models/criterion.go
package models

import (
	"time"
)

// Criterion 评分维度。Weight 为百分比权重，同一关卡生效的
// 维度权重之和应为 100（由管理端配置保证，服务端只做范围校验）。
type Criterion struct {
	ID              uint32    `gorm:"primarykey" json:"id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	Weight          uint      `gorm:"not null" json:"weight"`
	AppliesToLevels string    `gorm:"size:50;default:'2,3,4'" json:"applies_to_levels"`
	DisplayOrder    uint      `gorm:"default:0" json:"display_order"`
	IsActive        bool      `gorm:"not null;default:1" json:"is_active"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

func (Criterion) TableName() string {
	return "cfocup_scoring_criteria"
}

// AppliesTo 判断该维度是否适用于指定关卡
func (c *Criterion) AppliesTo(level int) bool {
	for _, l := range ParseLevelSet(c.AppliesToLevels) {
		if l == level {
			return true
		}
	}
	return false
}
