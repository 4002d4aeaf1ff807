// file: dto/score.go
package dto

// ScoreEntryReq 单个维度的打分
type ScoreEntryReq struct {
	CriterionID uint32  `json:"criterion_id" binding:"required"`
	Score       float64 `json:"score"`
	Feedback    string  `json:"feedback"`
}

type SubmitScoreReq struct {
	Scores          []ScoreEntryReq `json:"scores" binding:"required,min=1"`
	OverallFeedback string          `json:"overall_feedback"`
	IsFinal         bool            `json:"is_final"`
}

type CreateCriterionReq struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	Weight          uint   `json:"weight" binding:"required,max=100"`
	AppliesToLevels string `json:"applies_to_levels"`
	DisplayOrder    uint   `json:"display_order"`
}

type UpdateCriterionReq struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Weight          *uint   `json:"weight"`
	AppliesToLevels *string `json:"applies_to_levels"`
	DisplayOrder    *uint   `json:"display_order"`
	IsActive        *bool   `json:"is_active"`
}

type AssignJudgeReq struct {
	JudgeID uint32 `json:"judge_id" binding:"required"`
	Notes   string `json:"notes"`
}
