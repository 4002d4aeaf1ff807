// file: services/appeal_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"CFOCup/database"
	"CFOCup/models"
)

// ValidateAppealTransition 申诉状态机校验：pending -> {adjusted, rejected}，
// 终态不可重开，adjusted 必须带覆盖分且在 0-100 范围内。纯函数。
func ValidateAppealTransition(current models.AppealStatus, decision models.AppealStatus, adjustedScore *float64) error {
	if current != models.AppealStatusPending {
		return NewError(KindStateConflict, "申诉已裁定，不可重开")
	}
	switch decision {
	case models.AppealStatusAdjusted:
		if adjustedScore == nil {
			return NewError(KindValidation, "裁定为 adjusted 时必须提供覆盖分")
		}
		if *adjustedScore < 0 || *adjustedScore > 100 {
			return NewError(KindValidation, "覆盖分必须在 0-100 之间")
		}
	case models.AppealStatusRejected:
		// 驳回不需要附加数据
	default:
		return NewError(KindValidation, "无效的裁定结果（adjusted/rejected）")
	}
	return nil
}

// CreateAppeal 队员对某提交的评分发起申诉。
// original_score 在此刻从聚合器取当前值并冻结，之后不再改动。
func CreateAppeal(submissionID uint64, appellantID uint32, reason, ip string) (*models.Appeal, error) {
	var sub models.Submission
	if err := database.DB.First(&sub, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindNotFound, "提交不存在")
		}
		return nil, err
	}

	// 申诉人必须是该提交所属队伍的成员
	var membership models.TeamMember
	err := database.DB.
		Where("team_id = ? AND user_id = ?", sub.TeamID, appellantID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindForbidden, "你不是该队伍的成员")
		}
		return nil, err
	}

	originalScore, err := AggregatedSubmissionScore(submissionID)
	if err != nil {
		return nil, err
	}

	appeal := models.Appeal{
		SubmissionID:  submissionID,
		CompetitionID: sub.CompetitionID,
		TeamID:        sub.TeamID,
		AppellantID:   appellantID,
		Reason:        reason,
		OriginalScore: originalScore,
		Status:        models.AppealStatusPending,
	}
	if err := database.DB.Create(&appeal).Error; err != nil {
		return nil, err
	}

	RecordAudit(appellantID, "participant", "appeal_created", "score_appeal",
		fmt.Sprintf("%d", appeal.ID), sub.CompetitionID,
		map[string]interface{}{"submission_id": submissionID}, ip)

	return &appeal, nil
}

// ReviewAppeal 管理端裁定申诉。adjusted 的覆盖分会在后续聚合中
// 替代该提交的评委均分。
func ReviewAppeal(appealID uint64, decision models.AppealStatus, adjustedScore *float64, notes string, reviewerID uint32, ip string) (*models.Appeal, error) {
	var appeal models.Appeal
	if err := database.DB.First(&appeal, appealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindNotFound, "申诉不存在")
		}
		return nil, err
	}

	if err := ValidateAppealTransition(appeal.Status, decision, adjustedScore); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":       decision,
		"review_notes": notes,
		"reviewed_by":  reviewerID,
		"reviewed_at":  now,
	}
	if decision == models.AppealStatusAdjusted {
		updates["adjusted_score"] = *adjustedScore
	}
	if err := database.DB.Model(&appeal).Updates(updates).Error; err != nil {
		return nil, err
	}

	appeal.Status = decision
	appeal.ReviewNotes = notes
	appeal.ReviewedBy = &reviewerID
	appeal.ReviewedAt = &now
	if decision == models.AppealStatusAdjusted {
		appeal.AdjustedScore = adjustedScore
	}

	RecordAudit(reviewerID, "admin", "appeal_reviewed", "score_appeal",
		fmt.Sprintf("%d", appeal.ID), appeal.CompetitionID,
		map[string]interface{}{"decision": string(decision)}, ip)

	return &appeal, nil
}

// ListAppeals 管理端按比赛（可选按状态）查询申诉
func ListAppeals(competitionID uint32, status string) ([]models.Appeal, error) {
	db := database.DB.Where("competition_id = ?", competitionID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	var appeals []models.Appeal
	if err := db.Order("created_at desc").Find(&appeals).Error; err != nil {
		return nil, err
	}
	return appeals, nil
}
