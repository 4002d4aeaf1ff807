// file: dto/task.go
package dto

import (
	"strings"
	"time"
)

// ========== 请求 DTO ==========

type CreateTaskReq struct {
	CompetitionID    uint32     `json:"competition_id" binding:"required"`
	Title            string     `json:"title" binding:"required"`
	Description      string     `json:"description"`
	Level            int        `json:"level" binding:"required,min=1,max=4"`
	Deadline         *time.Time `json:"deadline"`
	AllowedFileTypes string     `json:"allowed_file_types"`
	MaxFileSizeMB    uint       `json:"max_file_size_mb"`
	MaxPoints        uint       `json:"max_points"`
	OrderIndex       uint       `json:"order_index"`
}

// Normalize 清洗扩展名配置并补默认值
func (r *CreateTaskReq) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.AllowedFileTypes = strings.ToLower(strings.ReplaceAll(r.AllowedFileTypes, " ", ""))
	if r.AllowedFileTypes == "" {
		r.AllowedFileTypes = "pdf,xlsx,docx"
	}
	if r.MaxFileSizeMB == 0 {
		r.MaxFileSizeMB = 50
	}
	if r.MaxPoints == 0 {
		r.MaxPoints = 100
	}
}

type UpdateTaskReq struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Deadline         *time.Time `json:"deadline"`
	AllowedFileTypes *string    `json:"allowed_file_types"`
	MaxFileSizeMB    *uint      `json:"max_file_size_mb"`
	MaxPoints        *uint      `json:"max_points"`
	OrderIndex       *uint      `json:"order_index"`
	IsActive         *bool      `json:"is_active"`
}

// ========== 响应 DTO ==========

// TaskWithStatusResp 参赛者视角的任务列表项：附带本队的门控状态
type TaskWithStatusResp struct {
	ID               uint32      `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Level            int         `json:"level"`
	Deadline         *time.Time  `json:"deadline"`
	AllowedFileTypes string      `json:"allowed_file_types"`
	MaxFileSizeMB    uint        `json:"max_file_size_mb"`
	MaxPoints        uint        `json:"max_points"`
	SubmissionStatus string      `json:"submission_status"`
	CanSubmit        bool        `json:"can_submit"`
	Submission       interface{} `json:"submission,omitempty"`
}
