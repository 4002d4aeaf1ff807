// file: services/submission_service.go
package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"CFOCup/database"
	"CFOCup/models"
)

// SubmitFileInput 上传落库所需的元信息：文件本身已交给外部存储，
// 这里只保留引用、哈希与大小。
type SubmitFileInput struct {
	FileName string
	FileRef  string
	FileSize uint64
	FileHash string
	IP       string
}

// TeamForUser 查找用户在指定比赛中所属的队伍
func TeamForUser(competitionID, userID uint32) (*models.Team, error) {
	var team models.Team
	err := database.DB.
		Joins("JOIN cfocup_team_members tm ON tm.team_id = cfocup_team.id").
		Where("tm.user_id = ? AND cfocup_team.competition_id = ?", userID, competitionID).
		First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindForbidden, "你尚未加入该比赛的队伍")
		}
		return nil, err
	}
	return &team, nil
}

// TaskGate 读取任务/比赛/已有提交并做一次门控判定（只读）
func TaskGate(taskID, teamID uint32, now time.Time) (GateStatus, *models.Submission, error) {
	var task models.Task
	if err := database.DB.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, NewError(KindNotFound, "任务不存在")
		}
		return "", nil, err
	}

	var comp models.Competition
	if err := database.DB.First(&comp, task.CompetitionID).Error; err != nil {
		return "", nil, NewError(KindNotFound, "比赛不存在")
	}

	var existing *models.Submission
	var sub models.Submission
	err := database.DB.Where("task_id = ? AND team_id = ?", taskID, teamID).First(&sub).Error
	if err == nil {
		existing = &sub
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, err
	}

	return EvaluateGate(comp, task, existing, now), existing, nil
}

// SubmitFile 提交（或在锁定前替换）某任务的队伍作业。
// 截止校验使用请求入口采样的时间，落库晚于截止不影响有效性。
func SubmitFile(taskID, actorID uint32, in SubmitFileInput) (*models.Submission, error) {
	now := time.Now().UTC()

	var task models.Task
	if err := database.DB.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindNotFound, "任务不存在")
		}
		return nil, err
	}
	if !task.IsActive {
		return nil, NewError(KindGateClosed, "任务未开放")
	}

	team, err := TeamForUser(task.CompetitionID, actorID)
	if err != nil {
		return nil, err
	}

	// 文件约束校验
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(in.FileName), "."))
	allowed := false
	for _, t := range task.AllowedTypeList() {
		if t == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, NewError(KindValidation,
			fmt.Sprintf("文件类型不允许，仅支持: %s", task.AllowedFileTypes))
	}
	if in.FileSize > task.MaxFileSizeBytes() {
		return nil, NewError(KindValidation,
			fmt.Sprintf("文件大小超过 %dMB 上限", task.MaxFileSizeMB))
	}

	var saved models.Submission
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// 比赛状态每次取新鲜快照，不做进程内共享
		var comp models.Competition
		if err := tx.First(&comp, task.CompetitionID).Error; err != nil {
			return NewError(KindNotFound, "比赛不存在")
		}

		// 对已有提交行加锁，防止并发替换交错
		var existing *models.Submission
		var row models.Submission
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("task_id = ? AND team_id = ?", taskID, team.ID).
			First(&row).Error
		if err == nil {
			existing = &row
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		gate := EvaluateGate(comp, task, existing, now)
		// open 放行；submitted 表示锁定前的重新提交，原地覆盖
		if gate != GateOpen && gate != GateSubmitted {
			return NewError(KindGateClosed, "当前不允许提交: "+string(gate))
		}

		saved = models.Submission{
			CompetitionID: task.CompetitionID,
			TaskID:        taskID,
			TeamID:        team.ID,
			Level:         task.Level,
			FileName:      in.FileName,
			FileRef:       in.FileRef,
			FileSize:      in.FileSize,
			FileHash:      in.FileHash,
			SubmittedBy:   actorID,
			SubmittedAt:   now,
			Status:        models.SubmissionStatusSubmitted,
		}
		return database.Upsert(tx,
			[]string{"task_id", "team_id"},
			[]string{"level", "file_name", "file_ref", "file_size", "file_hash",
				"submitted_by", "submitted_at", "status"},
			&saved)
	})
	if err != nil {
		return nil, err
	}

	// upsert 冲突覆盖时不回填主键，读回落库后的行
	if err := database.DB.Where("task_id = ? AND team_id = ?", taskID, team.ID).First(&saved).Error; err != nil {
		return nil, err
	}

	RecordAudit(actorID, "participant", "submission_upserted", "task_submission",
		fmt.Sprintf("%d", saved.ID), task.CompetitionID,
		map[string]interface{}{"task_id": taskID, "team_id": team.ID, "file_hash": in.FileHash}, in.IP)

	return &saved, nil
}

// LockSubmission 管理端锁定提交，幂等
func LockSubmission(submissionID uint64, actorID uint32, ip string) (*models.Submission, error) {
	var sub models.Submission
	if err := database.DB.First(&sub, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindNotFound, "提交不存在")
		}
		return nil, err
	}

	if sub.Status != models.SubmissionStatusLocked {
		now := time.Now().UTC()
		sub.Status = models.SubmissionStatusLocked
		sub.LockedAt = &now
		if err := database.DB.Model(&sub).
			Updates(map[string]interface{}{"status": sub.Status, "locked_at": sub.LockedAt}).Error; err != nil {
			return nil, err
		}
		RecordAudit(actorID, "admin", "submission_locked", "task_submission",
			fmt.Sprintf("%d", sub.ID), sub.CompetitionID, nil, ip)
	}

	return &sub, nil
}

// DuplicateGroup 同一任务下内容哈希相同的一组提交
type DuplicateGroup struct {
	FileHash    string            `json:"file_hash"`
	Submissions []DuplicateMember `json:"submissions"`
}

type DuplicateMember struct {
	SubmissionID uint64    `json:"submission_id"`
	TeamID       uint32    `json:"team_id"`
	FileName     string    `json:"file_name"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// GroupDuplicates 按内容哈希分组，只保留出现在两个及以上
// 队伍里的哈希。纯函数，便于单测。
func GroupDuplicates(subs []models.Submission) []DuplicateGroup {
	byHash := make(map[string][]DuplicateMember)
	order := make([]string, 0)
	for _, s := range subs {
		if s.FileHash == "" {
			continue
		}
		if _, seen := byHash[s.FileHash]; !seen {
			order = append(order, s.FileHash)
		}
		byHash[s.FileHash] = append(byHash[s.FileHash], DuplicateMember{
			SubmissionID: s.ID,
			TeamID:       s.TeamID,
			FileName:     s.FileName,
			SubmittedAt:  s.SubmittedAt,
		})
	}

	groups := make([]DuplicateGroup, 0)
	for _, h := range order {
		if len(byHash[h]) >= 2 {
			groups = append(groups, DuplicateGroup{FileHash: h, Submissions: byHash[h]})
		}
	}
	return groups
}

// IntegrityReport 某任务的查重报告，只读不落库
func IntegrityReport(taskID uint32) (int, []DuplicateGroup, error) {
	var subs []models.Submission
	if err := database.DB.Where("task_id = ?", taskID).
		Order("submitted_at asc").Find(&subs).Error; err != nil {
		return 0, nil, err
	}
	return len(subs), GroupDuplicates(subs), nil
}
