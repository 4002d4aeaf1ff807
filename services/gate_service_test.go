// file: services/gate_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"CFOCup/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestEvaluateGate_OpenWhenLevelActiveAndBeforeDeadline(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	comp := models.Competition{CurrentLevel: 2, Level2Deadline: timePtr(now.Add(24 * time.Hour))}
	task := models.Task{Level: 2}

	assert.Equal(t, GateOpen, EvaluateGate(comp, task, nil, now))
	assert.True(t, CanSubmit(GateOpen))
}

func TestEvaluateGate_LevelNotActive(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	comp := models.Competition{CurrentLevel: 2}
	task := models.Task{Level: 3}

	assert.Equal(t, GateLevelNotActive, EvaluateGate(comp, task, nil, now))
	assert.False(t, CanSubmit(GateLevelNotActive))
}

func TestEvaluateGate_PastLevelDeadline(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	comp := models.Competition{CurrentLevel: 3, Level3Deadline: timePtr(now.Add(-time.Minute))}
	task := models.Task{Level: 3}

	assert.Equal(t, GatePastDeadline, EvaluateGate(comp, task, nil, now))
}

func TestEvaluateGate_TaskDeadlineOverridesLevelDeadline(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	// 关卡截止已过，但任务级截止时间更晚且优先生效
	comp := models.Competition{CurrentLevel: 2, Level2Deadline: timePtr(now.Add(-time.Hour))}
	task := models.Task{Level: 2, Deadline: timePtr(now.Add(time.Hour))}

	assert.Equal(t, GateOpen, EvaluateGate(comp, task, nil, now))

	// 反过来：任务级截止已过，即使关卡截止未到也拒绝
	task.Deadline = timePtr(now.Add(-time.Minute))
	comp.Level2Deadline = timePtr(now.Add(time.Hour))
	assert.Equal(t, GatePastDeadline, EvaluateGate(comp, task, nil, now))
}

func TestEvaluateGate_NoDeadlineConfigured(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	comp := models.Competition{CurrentLevel: 4}
	task := models.Task{Level: 4}

	assert.Equal(t, GateOpen, EvaluateGate(comp, task, nil, now))
}

func TestEvaluateGate_ExistingSubmissionAllowsReplace(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	comp := models.Competition{CurrentLevel: 2}
	task := models.Task{Level: 2}
	existing := &models.Submission{Status: models.SubmissionStatusSubmitted}

	assert.Equal(t, GateSubmitted, EvaluateGate(comp, task, existing, now))
}

func TestEvaluateGate_LockPriorityBeatsEverything(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// 比赛整体锁定优先于关卡未开放
	comp := models.Competition{CurrentLevel: 1, SubmissionsLocked: true}
	task := models.Task{Level: 3}
	assert.Equal(t, GateLocked, EvaluateGate(comp, task, nil, now))

	// 单条提交锁定优先于已提交状态
	comp = models.Competition{CurrentLevel: 3}
	existing := &models.Submission{Status: models.SubmissionStatusLocked}
	assert.Equal(t, GateLocked, EvaluateGate(comp, task, existing, now))
}

func TestEvaluateGate_SubmittedBeatsDeadline(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	// 已有提交时不再看截止时间：状态展示为 submitted 而非 past_deadline
	comp := models.Competition{CurrentLevel: 2, Level2Deadline: timePtr(now.Add(-time.Hour))}
	task := models.Task{Level: 2}
	existing := &models.Submission{Status: models.SubmissionStatusSubmitted}

	assert.Equal(t, GateSubmitted, EvaluateGate(comp, task, existing, now))
}
