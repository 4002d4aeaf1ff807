// file: services/gate_service.go
package services

import (
	"time"

	"CFOCup/models"
)

// GateStatus 门控判定结果
type GateStatus string

const (
	GateOpen           GateStatus = "open"
	GateSubmitted      GateStatus = "submitted"
	GateLocked         GateStatus = "locked"
	GatePastDeadline   GateStatus = "past_deadline"
	GateLevelNotActive GateStatus = "level_not_active"
)

// EvaluateGate 判定某队当前能否向某任务提交。
// 纯函数：比赛状态按调用逐次传入快照，existing 为该队在该任务上
// 已有的提交（没有则为 nil），now 在请求入口处采样一次。
// 按严格优先级判定，先命中先返回：
//  1. 比赛整体锁定
//  2. 已有提交被锁定
//  3. 已有提交（未锁定，可原地替换）
//  4. 任务关卡未开放
//  5. 有效截止时间（任务级优先，其次关卡级）已过
//  6. 放行
func EvaluateGate(comp models.Competition, task models.Task, existing *models.Submission, now time.Time) GateStatus {
	if comp.SubmissionsLocked {
		return GateLocked
	}
	if existing != nil && existing.Status == models.SubmissionStatusLocked {
		return GateLocked
	}
	if existing != nil {
		return GateSubmitted
	}
	if task.Level > comp.CurrentLevel {
		return GateLevelNotActive
	}
	deadline := task.Deadline
	if deadline == nil {
		deadline = comp.LevelDeadline(task.Level)
	}
	if deadline != nil && now.After(*deadline) {
		return GatePastDeadline
	}
	return GateOpen
}

// CanSubmit 仅 open 状态允许首次提交；submitted 状态的重新提交
// 由 SubmitFile 单独放行（锁定前覆盖原提交）。
func CanSubmit(status GateStatus) bool {
	return status == GateOpen
}
