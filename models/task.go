// file: models/task.go
package models

import (
	"strconv"
	"strings"
	"time"
)

// Task 对应 cfocup_task 表。
// Deadline 为任务级截止时间，优先于所属关卡的截止时间。
type Task struct {
	ID               uint32      `gorm:"primarykey" json:"id"`
	CompetitionID    uint32      `gorm:"not null;index" json:"competition_id"`
	Competition      Competition `gorm:"foreignKey:CompetitionID" json:"-"`
	Title            string      `gorm:"size:100;not null" json:"title"`
	Description      string      `gorm:"type:text" json:"description"`
	Level            int         `gorm:"not null;default:1" json:"level"`
	Deadline         *time.Time  `json:"deadline"`
	AllowedFileTypes string      `gorm:"size:255;default:'pdf,xlsx,docx'" json:"allowed_file_types"`
	MaxFileSizeMB    uint        `gorm:"default:50" json:"max_file_size_mb"`
	MaxPoints        uint        `gorm:"default:100" json:"max_points"`
	OrderIndex       uint        `gorm:"default:0" json:"order_index"`
	IsActive         bool        `gorm:"not null;default:1" json:"is_active"`
	CreatedAt        time.Time   `json:"created_at,omitempty"`
	UpdatedAt        time.Time   `json:"updated_at,omitempty"`
}

func (Task) TableName() string {
	return "cfocup_task"
}

// AllowedTypeList 将逗号分隔的扩展名配置解析为列表
func (t *Task) AllowedTypeList() []string {
	parts := strings.Split(t.AllowedFileTypes, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MaxFileSizeBytes 换算为字节上限
func (t *Task) MaxFileSizeBytes() uint64 {
	return uint64(t.MaxFileSizeMB) * 1024 * 1024
}

// ParseLevelSet 解析 "2,3,4" 这类逗号分隔的关卡集合（供 criterion 复用）
func ParseLevelSet(s string) []int {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			out = append(out, n)
		}
	}
	return out
}
