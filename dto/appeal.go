// file: dto/appeal.go
package dto

import "strings"

type CreateAppealReq struct {
	Reason string `json:"reason" binding:"required"`
}

type ReviewAppealReq struct {
	Decision      string   `json:"decision" binding:"required"` // adjusted / rejected
	AdjustedScore *float64 `json:"adjusted_score"`
	ReviewNotes   string   `json:"review_notes"`
}

func (r *ReviewAppealReq) Normalize() {
	r.Decision = strings.ToLower(strings.TrimSpace(r.Decision))
}
