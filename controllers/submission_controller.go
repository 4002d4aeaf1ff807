// file: controllers/submission_controller.go
package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"CFOCup/database"
	"CFOCup/models"
	"CFOCup/services"
	"CFOCup/utils"
)

// --- 管理员接口 ---

// AdminListSubmissions 按比赛（可选按关卡/任务）查询提交
func AdminListSubmissions(c *gin.Context) {
	competitionID, _ := strconv.Atoi(c.Param("id"))

	db := database.DB.Where("competition_id = ?", competitionID)
	if level := c.Query("level"); level != "" {
		db = db.Where("level = ?", level)
	}
	if taskID := c.Query("task_id"); taskID != "" {
		db = db.Where("task_id = ?", taskID)
	}

	var subs []models.Submission
	if err := db.Order("submitted_at desc").Find(&subs).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	utils.Success(c, "success", subs)
}

// AdminLockSubmission 锁定单个提交，幂等
func AdminLockSubmission(c *gin.Context) {
	submissionID, _ := strconv.Atoi(c.Param("id"))

	sub, err := services.LockSubmission(uint64(submissionID), currentUserID(c), c.ClientIP())
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "Submission locked", sub)
}

// GetIntegrityReport 任务查重报告：按内容哈希分组，
// 两队及以上命中同一哈希即视为疑似重复
func GetIntegrityReport(c *gin.Context) {
	taskID, _ := strconv.Atoi(c.Param("id"))

	var task models.Task
	if err := database.DB.First(&task, taskID).Error; err != nil {
		utils.Error(c, 4004, "任务不存在")
		return
	}

	total, groups, err := services.IntegrityReport(uint32(taskID))
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	duplicateCount := 0
	for _, g := range groups {
		duplicateCount += len(g.Submissions)
	}

	utils.Success(c, "success", gin.H{
		"task_id":          taskID,
		"submission_count": total,
		"duplicate_count":  duplicateCount,
		"duplicates":       groups,
	})
}

// GetAuditLog 查询审计日志
func GetAuditLog(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "100")
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	db := database.DB.Order("created_at desc").Limit(limit)
	if competitionID := c.Query("competition_id"); competitionID != "" {
		db = db.Where("competition_id = ?", competitionID)
	}
	if entityType := c.Query("entity_type"); entityType != "" {
		db = db.Where("entity_type = ?", entityType)
	}

	var logs []models.AuditLog
	if err := db.Find(&logs).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	utils.Success(c, "success", logs)
}
