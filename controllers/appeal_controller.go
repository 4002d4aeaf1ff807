// file: controllers/appeal_controller.go
package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"CFOCup/dto"
	"CFOCup/models"
	"CFOCup/services"
	"CFOCup/utils"
)

// CreateAppeal 队员对某提交的评分发起申诉
func CreateAppeal(c *gin.Context) {
	submissionID, _ := strconv.Atoi(c.Param("id"))

	var req dto.CreateAppealReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	appeal, err := services.CreateAppeal(uint64(submissionID), currentUserID(c), req.Reason, c.ClientIP())
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "Appeal created", appeal)
}

// --- 管理员接口 ---

// ListAppeals 按比赛（可选按状态）查询申诉
func ListAppeals(c *gin.Context) {
	competitionID, _ := strconv.Atoi(c.Param("id"))

	appeals, err := services.ListAppeals(uint32(competitionID), c.Query("status"))
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	utils.Success(c, "success", appeals)
}

// ReviewAppeal 裁定申诉：adjusted 带覆盖分，rejected 直接驳回
func ReviewAppeal(c *gin.Context) {
	appealID, _ := strconv.Atoi(c.Param("id"))

	var req dto.ReviewAppealReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	appeal, err := services.ReviewAppeal(uint64(appealID),
		models.AppealStatus(req.Decision), req.AdjustedScore, req.ReviewNotes,
		currentUserID(c), c.ClientIP())
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "Appeal reviewed", appeal)
}
