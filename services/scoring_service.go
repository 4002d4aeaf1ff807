// file: services/scoring_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"CFOCup/database"
	"CFOCup/models"
)

// ScoreEntryInput 评委对单个维度的打分
type ScoreEntryInput struct {
	CriterionID uint32
	Score       float64
	Feedback    string
}

// Round2 四舍五入保留两位小数
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WeightedTotal 按权重汇总各维度得分：Σ score_i × weight_i / 100，
// 只计入适用于该关卡的维度。纯函数。
func WeightedTotal(scores map[uint32]float64, criteria []models.Criterion, level int) float64 {
	total := 0.0
	for i := range criteria {
		c := &criteria[i]
		if !c.AppliesTo(level) {
			continue
		}
		if s, ok := scores[c.ID]; ok {
			total += s * float64(c.Weight) / 100
		}
	}
	return Round2(total)
}

// VerifyJudgeAssignment 校验评委在该比赛有生效的分配记录
func VerifyJudgeAssignment(competitionID, judgeID uint32) error {
	var assignment models.JudgeAssignment
	err := database.DB.
		Where("competition_id = ? AND judge_id = ? AND is_active = ?", competitionID, judgeID, true).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewError(KindNotAssigned, "你不是该比赛的评委")
		}
		return err
	}
	return nil
}

// SubmitScore 评委提交（或更新）对某个提交的打分。
//   - 不适用于该提交关卡的维度静默丢弃，不算错误
//   - 分数越界返回 ValidationError
//   - ScoreEntry 按 (submission, criterion, judge) 幂等 upsert
//   - weighted_total 始终由落库后的 ScoreEntry 行重算
//   - 已定稿的评分不可再修改；isFinal=true 等价于提交即定稿
func SubmitScore(submissionID uint64, judgeID uint32, entries []ScoreEntryInput, overallFeedback string, isFinal bool, ip string) (*models.JudgeScore, error) {
	var sub models.Submission
	if err := database.DB.First(&sub, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindNotFound, "提交不存在")
		}
		return nil, err
	}

	if err := VerifyJudgeAssignment(sub.CompetitionID, judgeID); err != nil {
		return nil, err
	}

	var criteria []models.Criterion
	if err := database.DB.Where("is_active = ?", true).Find(&criteria).Error; err != nil {
		return nil, err
	}
	criteriaByID := make(map[uint32]*models.Criterion, len(criteria))
	for i := range criteria {
		criteriaByID[criteria[i].ID] = &criteria[i]
	}

	// 校验先于落库，整批要么全收要么全拒；
	// 不适用于该关卡的维度在范围校验之前就被丢弃
	for _, e := range entries {
		criterion, ok := criteriaByID[e.CriterionID]
		if !ok {
			return nil, NewError(KindValidation, fmt.Sprintf("评分维度不存在: %d", e.CriterionID))
		}
		if !criterion.AppliesTo(sub.Level) {
			continue
		}
		if e.Score < 0 || e.Score > 100 {
			return nil, NewError(KindValidation, "分数必须在 0-100 之间")
		}
	}

	var result models.JudgeScore
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// 定稿后的评分是终态，不接受改写
		var existing models.JudgeScore
		err := tx.Where("submission_id = ? AND judge_id = ?", submissionID, judgeID).
			First(&existing).Error
		if err == nil && existing.IsFinal {
			return NewError(KindStateConflict, "评分已定稿，不可修改")
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		for _, e := range entries {
			criterion := criteriaByID[e.CriterionID]
			if !criterion.AppliesTo(sub.Level) {
				continue // 不适用的维度直接丢弃
			}
			entry := models.ScoreEntry{
				SubmissionID: submissionID,
				CriterionID:  e.CriterionID,
				JudgeID:      judgeID,
				Score:        e.Score,
				Feedback:     e.Feedback,
			}
			if err := database.Upsert(tx,
				[]string{"submission_id", "criterion_id", "judge_id"},
				[]string{"score", "feedback"},
				&entry); err != nil {
				return err
			}
		}

		// 从当前落库的 ScoreEntry 行重算加权总分
		var rows []models.ScoreEntry
		if err := tx.Where("submission_id = ? AND judge_id = ?", submissionID, judgeID).
			Find(&rows).Error; err != nil {
			return err
		}
		scores := make(map[uint32]float64, len(rows))
		for _, r := range rows {
			scores[r.CriterionID] = r.Score
		}
		total := WeightedTotal(scores, criteria, sub.Level)

		result = models.JudgeScore{
			SubmissionID:    submissionID,
			JudgeID:         judgeID,
			WeightedTotal:   total,
			OverallFeedback: overallFeedback,
			IsFinal:         isFinal,
			ScoredAt:        time.Now().UTC(),
		}
		return database.Upsert(tx,
			[]string{"submission_id", "judge_id"},
			[]string{"weighted_total", "overall_feedback", "is_final", "scored_at"},
			&result)
	})
	if err != nil {
		return nil, err
	}

	if err := database.DB.Where("submission_id = ? AND judge_id = ?", submissionID, judgeID).
		First(&result).Error; err != nil {
		return nil, err
	}

	action := "score_draft_saved"
	if isFinal {
		action = "submission_scored"
	}
	RecordAudit(judgeID, "judge", action, "task_submission",
		fmt.Sprintf("%d", submissionID), sub.CompetitionID,
		map[string]interface{}{"weighted_total": result.WeightedTotal, "is_final": isFinal}, ip)

	return &result, nil
}

// FinalizeScore 显式定稿：is_final 只允许 false -> true，重复定稿幂等
func FinalizeScore(submissionID uint64, judgeID uint32, ip string) (*models.JudgeScore, error) {
	var sub models.Submission
	if err := database.DB.First(&sub, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindNotFound, "提交不存在")
		}
		return nil, err
	}
	if err := VerifyJudgeAssignment(sub.CompetitionID, judgeID); err != nil {
		return nil, err
	}

	var score models.JudgeScore
	err := database.DB.Where("submission_id = ? AND judge_id = ?", submissionID, judgeID).
		First(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindNotFound, "尚未提交过评分，无法定稿")
		}
		return nil, err
	}

	if !score.IsFinal {
		if err := database.DB.Model(&score).Update("is_final", true).Error; err != nil {
			return nil, err
		}
		score.IsFinal = true
		RecordAudit(judgeID, "judge", "score_finalized", "task_submission",
			fmt.Sprintf("%d", submissionID), sub.CompetitionID,
			map[string]interface{}{"weighted_total": score.WeightedTotal}, ip)
	}

	return &score, nil
}

// JudgeScoresFor 评委查看自己对某提交的打分明细
func JudgeScoresFor(submissionID uint64, judgeID uint32) ([]models.ScoreEntry, *models.JudgeScore, error) {
	var rows []models.ScoreEntry
	if err := database.DB.Where("submission_id = ? AND judge_id = ?", submissionID, judgeID).
		Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	var overall models.JudgeScore
	err := database.DB.Where("submission_id = ? AND judge_id = ?", submissionID, judgeID).
		First(&overall).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rows, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return rows, &overall, nil
}
