// file: controllers/competition_controller.go
package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"CFOCup/database"
	"CFOCup/dto"
	"CFOCup/models"
	"CFOCup/services"
	"CFOCup/utils"
)

// ListCompetitions 查询比赛列表
func ListCompetitions(c *gin.Context) {
	var competitions []models.Competition
	if err := database.DB.Order("created_at desc").Find(&competitions).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}
	utils.Success(c, "success", competitions)
}

// GetCompetitionStatus 查询比赛状态：显式状态开关 + 各关卡开放情况
func GetCompetitionStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var comp models.Competition
	if err := database.DB.First(&comp, id).Error; err != nil {
		utils.Error(c, 4004, "比赛不存在")
		return
	}

	now := time.Now().UTC()
	levelOpen := func(level int) bool {
		if comp.SubmissionsLocked || comp.CurrentLevel < level {
			return false
		}
		if d := comp.LevelDeadline(level); d != nil && now.After(*d) {
			return false
		}
		return true
	}

	utils.Success(c, "success", gin.H{
		"competition_id":     comp.ID,
		"title":              comp.Title,
		"current_level":      comp.CurrentLevel,
		"submissions_locked": comp.SubmissionsLocked,
		"results_published":  comp.ResultsPublished,
		"level_2_deadline":   comp.Level2Deadline,
		"level_3_deadline":   comp.Level3Deadline,
		"level_4_deadline":   comp.Level4Deadline,
		"level_2_open":       levelOpen(2),
		"level_3_open":       levelOpen(3),
		"level_4_open":       levelOpen(4),
		"now":                now.Format(time.RFC3339),
	})
}

// --- 管理员接口 ---

// UpsertCompetition 创建或修改比赛信息
func UpsertCompetition(c *gin.Context) {
	var req dto.UpsertCompetitionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	comp := models.Competition{
		Title:          req.Title,
		Description:    req.Description,
		Level2Deadline: req.Level2Deadline,
		Level3Deadline: req.Level3Deadline,
		Level4Deadline: req.Level4Deadline,
	}

	if idStr := c.Param("id"); idStr != "" {
		id, _ := strconv.Atoi(idStr)
		comp.ID = uint32(id)
		if err := database.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "description", "level_2_deadline", "level_3_deadline", "level_4_deadline"}),
		}).Create(&comp).Error; err != nil {
			utils.Error(c, 5000, "Failed to create/update competition: "+err.Error())
			return
		}
	} else if err := database.DB.Create(&comp).Error; err != nil {
		utils.Error(c, 5000, "Failed to create competition: "+err.Error())
		return
	}

	utils.Success(c, "Competition saved successfully", gin.H{"id": comp.ID})
}

// SetLevel 推进比赛关卡
func SetLevel(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req dto.SetLevelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	result := database.DB.Model(&models.Competition{}).
		Where("id = ?", id).Update("current_level", req.Level)
	if result.Error != nil {
		utils.Error(c, 5000, "数据库错误")
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, 4004, "比赛不存在")
		return
	}

	services.RecordAudit(currentUserID(c), "admin", "level_changed", "competition",
		c.Param("id"), uint32(id),
		map[string]interface{}{"level": req.Level}, c.ClientIP())

	utils.Success(c, "Level updated", gin.H{"current_level": req.Level})
}

// LockSubmissions 锁定/解锁整场比赛的提交通道
func LockSubmissions(locked bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := strconv.Atoi(c.Param("id"))

		result := database.DB.Model(&models.Competition{}).
			Where("id = ?", id).Update("submissions_locked", locked)
		if result.Error != nil {
			utils.Error(c, 5000, "数据库错误")
			return
		}
		if result.RowsAffected == 0 {
			utils.Error(c, 4004, "比赛不存在")
			return
		}

		action := "submissions_unlocked"
		msg := "Submissions unlocked"
		if locked {
			action = "submissions_locked"
			msg = "Submissions locked"
		}
		services.RecordAudit(currentUserID(c), "admin", action, "competition",
			c.Param("id"), uint32(id), nil, c.ClientIP())

		utils.Success(c, msg, nil)
	}
}

// HealthCheck 健康检查
func HealthCheck(c *gin.Context) {
	dbOK := true
	if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbOK = false
	}

	status := "healthy"
	if !dbOK {
		status = "degraded"
	}
	utils.Success(c, "success", gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
