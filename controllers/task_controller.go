// file: controllers/task_controller.go
package controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"CFOCup/database"
	"CFOCup/dto"
	"CFOCup/models"
	"CFOCup/services"
	"CFOCup/utils"
)

// ListCompetitionTasks —— 参赛者视角的任务列表，附带本队的门控状态
func ListCompetitionTasks(c *gin.Context) {
	competitionID, _ := strconv.Atoi(c.Param("id"))
	now := time.Now().UTC()

	var comp models.Competition
	if err := database.DB.First(&comp, competitionID).Error; err != nil {
		utils.Error(c, 4004, "比赛不存在")
		return
	}

	var tasks []models.Task
	if err := database.DB.
		Where("competition_id = ? AND is_active = ?", competitionID, true).
		Order("level asc, order_index asc").
		Find(&tasks).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	// 查不到队伍不报错：无队用户也能浏览任务，只是不能提交
	var teamID uint32
	if team, err := services.TeamForUser(uint32(competitionID), currentUserID(c)); err == nil {
		teamID = team.ID
	}

	submissions := make(map[uint32]models.Submission)
	if teamID != 0 {
		var subs []models.Submission
		if err := database.DB.Where("team_id = ?", teamID).Find(&subs).Error; err != nil {
			utils.Error(c, 5000, "查询失败")
			return
		}
		for _, s := range subs {
			submissions[s.TaskID] = s
		}
	}

	items := make([]dto.TaskWithStatusResp, 0, len(tasks))
	for _, t := range tasks {
		var existing *models.Submission
		if s, ok := submissions[t.ID]; ok {
			existing = &s
		}
		gate := services.EvaluateGate(comp, t, existing, now)

		item := dto.TaskWithStatusResp{
			ID:               t.ID,
			Title:            t.Title,
			Description:      t.Description,
			Level:            t.Level,
			Deadline:         t.Deadline,
			AllowedFileTypes: t.AllowedFileTypes,
			MaxFileSizeMB:    t.MaxFileSizeMB,
			MaxPoints:        t.MaxPoints,
			SubmissionStatus: string(gate),
			CanSubmit:        services.CanSubmit(gate),
		}
		if existing != nil {
			item.Submission = existing
		}
		items = append(items, item)
	}

	utils.Success(c, "success", gin.H{
		"competition": gin.H{
			"id":                 comp.ID,
			"title":              comp.Title,
			"current_level":      comp.CurrentLevel,
			"submissions_locked": comp.SubmissionsLocked,
		},
		"tasks": items,
	})
}

// GetTaskStatus —— 单个任务的门控判定
func GetTaskStatus(c *gin.Context) {
	taskID, _ := strconv.Atoi(c.Param("id"))

	var task models.Task
	if err := database.DB.First(&task, taskID).Error; err != nil {
		utils.Error(c, 4004, "任务不存在")
		return
	}

	team, err := services.TeamForUser(task.CompetitionID, currentUserID(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}

	gate, _, err := services.TaskGate(uint32(taskID), team.ID, time.Now().UTC())
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "success", gin.H{
		"task_id":           taskID,
		"submission_status": string(gate),
		"can_submit":        services.CanSubmit(gate),
	})
}

// SubmitTaskFile —— 提交任务文件。
// 文件字节交给外部存储，核心只落引用、哈希和大小。
func SubmitTaskFile(c *gin.Context) {
	taskID, _ := strconv.Atoi(c.Param("id"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, 1001, "缺少上传文件")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		utils.Error(c, 5000, "读取上传文件失败")
		return
	}
	defer f.Close()

	hasher := sha256.New()
	size, err := io.Copy(hasher, f)
	if err != nil {
		utils.Error(c, 5000, "读取上传文件失败")
		return
	}
	fileHash := hex.EncodeToString(hasher.Sum(nil))

	ext := strings.TrimPrefix(filepath.Ext(fileHeader.Filename), ".")
	fileRef := fmt.Sprintf("task_submissions/%d/%s.%s", taskID, uuid.New().String(), ext)

	sub, err := services.SubmitFile(uint32(taskID), currentUserID(c), services.SubmitFileInput{
		FileName: fileHeader.Filename,
		FileRef:  fileRef,
		FileSize: uint64(size),
		FileHash: fileHash,
		IP:       c.ClientIP(),
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "File submitted successfully", sub)
}

// GetMySubmission —— 本队在某任务上的提交
func GetMySubmission(c *gin.Context) {
	taskID, _ := strconv.Atoi(c.Param("id"))

	var task models.Task
	if err := database.DB.First(&task, taskID).Error; err != nil {
		utils.Error(c, 4004, "任务不存在")
		return
	}

	team, err := services.TeamForUser(task.CompetitionID, currentUserID(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}

	var sub models.Submission
	err = database.DB.Where("task_id = ? AND team_id = ?", taskID, team.ID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Success(c, "success", nil)
		return
	}
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	utils.Success(c, "success", sub)
}

// --- 管理员接口 ---

// CreateTask 创建任务
func CreateTask(c *gin.Context) {
	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	var comp models.Competition
	if err := database.DB.First(&comp, req.CompetitionID).Error; err != nil {
		utils.Error(c, 4004, "比赛不存在")
		return
	}

	task := models.Task{
		CompetitionID:    req.CompetitionID,
		Title:            req.Title,
		Description:      req.Description,
		Level:            req.Level,
		Deadline:         req.Deadline,
		AllowedFileTypes: req.AllowedFileTypes,
		MaxFileSizeMB:    req.MaxFileSizeMB,
		MaxPoints:        req.MaxPoints,
		OrderIndex:       req.OrderIndex,
		IsActive:         true,
	}
	if err := database.DB.Create(&task).Error; err != nil {
		utils.Error(c, 5000, "创建任务失败: "+err.Error())
		return
	}
	utils.Success(c, "Task created successfully", gin.H{"id": task.ID})
}

// UpdateTask 更新任务（局部更新，nil 字段不动）
func UpdateTask(c *gin.Context) {
	taskID, _ := strconv.Atoi(c.Param("id"))

	var req dto.UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Deadline != nil {
		updates["deadline"] = *req.Deadline
	}
	if req.AllowedFileTypes != nil {
		updates["allowed_file_types"] = strings.ToLower(*req.AllowedFileTypes)
	}
	if req.MaxFileSizeMB != nil {
		updates["max_file_size_mb"] = *req.MaxFileSizeMB
	}
	if req.MaxPoints != nil {
		updates["max_points"] = *req.MaxPoints
	}
	if req.OrderIndex != nil {
		updates["order_index"] = *req.OrderIndex
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		utils.Error(c, 1001, "没有需要更新的字段")
		return
	}

	result := database.DB.Model(&models.Task{}).Where("id = ?", taskID).Updates(updates)
	if result.Error != nil {
		utils.Error(c, 5000, "数据库错误")
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, 4004, "任务不存在")
		return
	}

	utils.Success(c, "Task updated", nil)
}
