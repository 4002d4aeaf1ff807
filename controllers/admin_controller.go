// file: controllers/admin_controller.go
package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"CFOCup/database"
	"CFOCup/dto"
	"CFOCup/models"
	"CFOCup/services"
	"CFOCup/utils"
)

// AssignJudge 为比赛分配评委，(competition, judge) 幂等 upsert
func AssignJudge(c *gin.Context) {
	competitionID, _ := strconv.Atoi(c.Param("id"))

	var req dto.AssignJudgeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	var judge models.User
	if err := database.DB.First(&judge, req.JudgeID).Error; err != nil {
		utils.Error(c, 4004, "评委用户不存在")
		return
	}

	assignment := models.JudgeAssignment{
		CompetitionID: uint32(competitionID),
		JudgeID:       req.JudgeID,
		AssignedBy:    currentUserID(c),
		Notes:         req.Notes,
		IsActive:      true,
		AssignedAt:    time.Now().UTC(),
	}
	if err := database.Upsert(database.DB,
		[]string{"competition_id", "judge_id"},
		[]string{"assigned_by", "notes", "is_active", "assigned_at"},
		&assignment); err != nil {
		utils.Error(c, 5000, "分配评委失败: "+err.Error())
		return
	}

	services.RecordAudit(currentUserID(c), "admin", "judge_assigned", "judge_assignment",
		c.Param("id"), uint32(competitionID),
		map[string]interface{}{"judge_id": req.JudgeID}, c.ClientIP())

	utils.Success(c, "Judge assigned", nil)
}

// ListJudges 查询比赛的评委分配
func ListJudges(c *gin.Context) {
	competitionID, _ := strconv.Atoi(c.Param("id"))

	var assignments []models.JudgeAssignment
	if err := database.DB.
		Where("competition_id = ? AND is_active = ?", competitionID, true).
		Find(&assignments).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	utils.Success(c, "success", assignments)
}

// RemoveJudge 撤销评委分配（置 is_active=false，保留历史）
func RemoveJudge(c *gin.Context) {
	competitionID, _ := strconv.Atoi(c.Param("id"))
	judgeID, _ := strconv.Atoi(c.Param("judge_id"))

	result := database.DB.Model(&models.JudgeAssignment{}).
		Where("competition_id = ? AND judge_id = ?", competitionID, judgeID).
		Update("is_active", false)
	if result.Error != nil {
		utils.Error(c, 5000, "数据库错误")
		return
	}

	services.RecordAudit(currentUserID(c), "admin", "judge_removed", "judge_assignment",
		c.Param("judge_id"), uint32(competitionID), nil, c.ClientIP())

	utils.Success(c, "Judge removed", nil)
}

// --- 评分维度管理 ---

func ListCriteria(c *gin.Context) {
	var criteria []models.Criterion
	if err := database.DB.Order("display_order asc").Find(&criteria).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}
	utils.Success(c, "success", criteria)
}

func CreateCriterion(c *gin.Context) {
	var req dto.CreateCriterionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	if req.AppliesToLevels == "" {
		req.AppliesToLevels = "2,3,4"
	}

	criterion := models.Criterion{
		Name:            req.Name,
		Description:     req.Description,
		Weight:          req.Weight,
		AppliesToLevels: req.AppliesToLevels,
		DisplayOrder:    req.DisplayOrder,
		IsActive:        true,
	}
	if err := database.DB.Create(&criterion).Error; err != nil {
		utils.Error(c, 5000, "创建评分维度失败: "+err.Error())
		return
	}

	utils.Success(c, "Criterion created", gin.H{"id": criterion.ID})
}

func UpdateCriterion(c *gin.Context) {
	criterionID, _ := strconv.Atoi(c.Param("id"))

	var req dto.UpdateCriterionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Weight != nil {
		if *req.Weight > 100 {
			utils.Error(c, 1001, "weight 不能超过 100")
			return
		}
		updates["weight"] = *req.Weight
	}
	if req.AppliesToLevels != nil {
		updates["applies_to_levels"] = *req.AppliesToLevels
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		utils.Error(c, 1001, "没有需要更新的字段")
		return
	}

	result := database.DB.Model(&models.Criterion{}).Where("id = ?", criterionID).Updates(updates)
	if result.Error != nil {
		utils.Error(c, 5000, "数据库错误")
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, 4004, "评分维度不存在")
		return
	}

	utils.Success(c, "Criterion updated", nil)
}
