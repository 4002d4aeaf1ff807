// file: services/scoring_store_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CFOCup/models"
)

func TestSubmitScore_IdempotentUpsert(t *testing.T) {
	f := newScoringFixture(t)

	entries := []ScoreEntryInput{
		{CriterionID: f.critA.ID, Score: 80},
		{CriterionID: f.critB.ID, Score: 50},
	}

	first, err := SubmitScore(f.sub.ID, 9, entries, "整体不错", false, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 68.0, first.WeightedTotal)

	// 原样重放：不产生新行，总分不变
	second, err := SubmitScore(f.sub.ID, 9, entries, "整体不错", false, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 68.0, second.WeightedTotal)

	var scoreRows int64
	f.db.Model(&models.JudgeScore{}).
		Where("submission_id = ? AND judge_id = ?", f.sub.ID, 9).Count(&scoreRows)
	assert.Equal(t, int64(1), scoreRows)

	var entryRows int64
	f.db.Model(&models.ScoreEntry{}).
		Where("submission_id = ? AND judge_id = ?", f.sub.ID, 9).Count(&entryRows)
	assert.Equal(t, int64(2), entryRows)
}

func TestSubmitScore_LastWriteWins(t *testing.T) {
	f := newScoringFixture(t)

	_, err := SubmitScore(f.sub.ID, 9, []ScoreEntryInput{
		{CriterionID: f.critA.ID, Score: 80},
		{CriterionID: f.critB.ID, Score: 50},
	}, "", false, "")
	require.NoError(t, err)

	updated, err := SubmitScore(f.sub.ID, 9, []ScoreEntryInput{
		{CriterionID: f.critA.ID, Score: 90},
		{CriterionID: f.critB.ID, Score: 50},
	}, "", false, "")
	require.NoError(t, err)

	// 90*0.6 + 50*0.4 = 74，仍然只有一行
	assert.Equal(t, 74.0, updated.WeightedTotal)
	var rows int64
	f.db.Model(&models.JudgeScore{}).
		Where("submission_id = ? AND judge_id = ?", f.sub.ID, 9).Count(&rows)
	assert.Equal(t, int64(1), rows)
}

func TestSubmitScore_OutOfRangeInapplicableCriterionDropped(t *testing.T) {
	f := newScoringFixture(t)

	critLate := models.Criterion{Name: "终局答辩", Weight: 40, AppliesToLevels: "4", IsActive: true}
	require.NoError(t, f.db.Create(&critLate).Error)

	// 提交在第 2 关，维度只适用于第 4 关：连同越界的分数一起丢弃
	score, err := SubmitScore(f.sub.ID, 9, []ScoreEntryInput{
		{CriterionID: f.critA.ID, Score: 80},
		{CriterionID: critLate.ID, Score: 150},
	}, "", false, "")
	require.NoError(t, err)
	assert.Equal(t, 48.0, score.WeightedTotal)

	var lateRows int64
	f.db.Model(&models.ScoreEntry{}).
		Where("submission_id = ? AND criterion_id = ?", f.sub.ID, critLate.ID).Count(&lateRows)
	assert.Equal(t, int64(0), lateRows)

	// 适用维度的越界分数仍然整批拒绝
	_, err = SubmitScore(f.sub.ID, 9, []ScoreEntryInput{
		{CriterionID: f.critA.ID, Score: 150},
	}, "", false, "")
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestSubmitScore_FinalizedScoreRejectsRewrite(t *testing.T) {
	f := newScoringFixture(t)

	entries := []ScoreEntryInput{{CriterionID: f.critA.ID, Score: 80}}
	_, err := SubmitScore(f.sub.ID, 9, entries, "", true, "")
	require.NoError(t, err)

	_, err = SubmitScore(f.sub.ID, 9, entries, "", false, "")
	assert.Equal(t, KindStateConflict, KindOf(err))
}

func TestFinalizeScore_Idempotent(t *testing.T) {
	f := newScoringFixture(t)

	_, err := SubmitScore(f.sub.ID, 9, []ScoreEntryInput{
		{CriterionID: f.critA.ID, Score: 80},
	}, "", false, "")
	require.NoError(t, err)

	first, err := FinalizeScore(f.sub.ID, 9, "")
	require.NoError(t, err)
	assert.True(t, first.IsFinal)

	again, err := FinalizeScore(f.sub.ID, 9, "")
	require.NoError(t, err)
	assert.True(t, again.IsFinal)
	assert.Equal(t, first.WeightedTotal, again.WeightedTotal)
}

func TestSubmitScore_UnassignedJudge(t *testing.T) {
	f := newScoringFixture(t)

	_, err := SubmitScore(f.sub.ID, 99, []ScoreEntryInput{
		{CriterionID: f.critA.ID, Score: 80},
	}, "", false, "")
	assert.Equal(t, KindNotAssigned, KindOf(err))
}
