// file: services/appeal_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"CFOCup/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestValidateAppealTransition_AdjustedRequiresScore(t *testing.T) {
	err := ValidateAppealTransition(models.AppealStatusPending, models.AppealStatusAdjusted, nil)
	assert.Equal(t, KindValidation, KindOf(err))

	err = ValidateAppealTransition(models.AppealStatusPending, models.AppealStatusAdjusted, floatPtr(85))
	assert.NoError(t, err)
}

func TestValidateAppealTransition_AdjustedScoreRange(t *testing.T) {
	err := ValidateAppealTransition(models.AppealStatusPending, models.AppealStatusAdjusted, floatPtr(-1))
	assert.Equal(t, KindValidation, KindOf(err))

	err = ValidateAppealTransition(models.AppealStatusPending, models.AppealStatusAdjusted, floatPtr(100.5))
	assert.Equal(t, KindValidation, KindOf(err))

	assert.NoError(t, ValidateAppealTransition(models.AppealStatusPending, models.AppealStatusAdjusted, floatPtr(0)))
	assert.NoError(t, ValidateAppealTransition(models.AppealStatusPending, models.AppealStatusAdjusted, floatPtr(100)))
}

func TestValidateAppealTransition_RejectedNeedsNothing(t *testing.T) {
	assert.NoError(t, ValidateAppealTransition(models.AppealStatusPending, models.AppealStatusRejected, nil))
}

func TestValidateAppealTransition_TerminalStatesCannotReopen(t *testing.T) {
	err := ValidateAppealTransition(models.AppealStatusAdjusted, models.AppealStatusRejected, nil)
	assert.Equal(t, KindStateConflict, KindOf(err))

	err = ValidateAppealTransition(models.AppealStatusRejected, models.AppealStatusAdjusted, floatPtr(50))
	assert.Equal(t, KindStateConflict, KindOf(err))
}

func TestValidateAppealTransition_InvalidDecision(t *testing.T) {
	err := ValidateAppealTransition(models.AppealStatusPending, models.AppealStatusPending, nil)
	assert.Equal(t, KindValidation, KindOf(err))

	err = ValidateAppealTransition(models.AppealStatusPending, models.AppealStatus("approved"), nil)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NewError(KindNotFound, "提交不存在")))
	assert.Equal(t, KindInternal, KindOf(assert.AnError))
}
