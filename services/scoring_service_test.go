// file: services/scoring_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"CFOCup/models"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 68.0, Round2(68.0))
	assert.Equal(t, 66.67, Round2(200.0/3.0))
	assert.Equal(t, 0.1, Round2(0.1049))
	assert.Equal(t, 0.11, Round2(0.105))
}

func TestWeightedTotal_Basic(t *testing.T) {
	criteria := []models.Criterion{
		{ID: 1, Name: "财务分析", Weight: 60, AppliesToLevels: "2,3,4"},
		{ID: 2, Name: "展示表达", Weight: 40, AppliesToLevels: "2,3,4"},
	}
	scores := map[uint32]float64{1: 80, 2: 50}

	// 80*0.6 + 50*0.4 = 68
	assert.Equal(t, 68.0, WeightedTotal(scores, criteria, 2))
}

func TestWeightedTotal_SkipsNonApplicableCriteria(t *testing.T) {
	criteria := []models.Criterion{
		{ID: 1, Weight: 60, AppliesToLevels: "2,3,4"},
		{ID: 2, Weight: 40, AppliesToLevels: "4"},
	}
	scores := map[uint32]float64{1: 100, 2: 100}

	// 第 2 关只有维度 1 生效
	assert.Equal(t, 60.0, WeightedTotal(scores, criteria, 2))
	assert.Equal(t, 100.0, WeightedTotal(scores, criteria, 4))
}

func TestWeightedTotal_MissingScoreContributesNothing(t *testing.T) {
	criteria := []models.Criterion{
		{ID: 1, Weight: 70, AppliesToLevels: "2"},
		{ID: 2, Weight: 30, AppliesToLevels: "2"},
	}
	scores := map[uint32]float64{1: 90}

	assert.Equal(t, 63.0, WeightedTotal(scores, criteria, 2))
}

func TestWeightedTotal_RoundsToTwoDecimals(t *testing.T) {
	criteria := []models.Criterion{
		{ID: 1, Weight: 33, AppliesToLevels: "3"},
		{ID: 2, Weight: 33, AppliesToLevels: "3"},
		{ID: 3, Weight: 34, AppliesToLevels: "3"},
	}
	scores := map[uint32]float64{1: 77.7, 2: 88.8, 3: 99.9}

	// 77.7*0.33 + 88.8*0.33 + 99.9*0.34 = 25.641 + 29.304 + 33.966 = 88.911
	assert.Equal(t, 88.91, WeightedTotal(scores, criteria, 3))
}

func TestParseLevelSet(t *testing.T) {
	assert.Equal(t, []int{2, 3, 4}, models.ParseLevelSet("2,3,4"))
	assert.Equal(t, []int{3}, models.ParseLevelSet(" 3 "))
	assert.Empty(t, models.ParseLevelSet(""))
	assert.Equal(t, []int{2, 4}, models.ParseLevelSet("2, x, 4"))
}

func TestCriterionAppliesTo(t *testing.T) {
	c := models.Criterion{AppliesToLevels: "2,4"}
	assert.True(t, c.AppliesTo(2))
	assert.False(t, c.AppliesTo(3))
	assert.True(t, c.AppliesTo(4))
}
