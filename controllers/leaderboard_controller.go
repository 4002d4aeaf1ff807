// file: controllers/leaderboard_controller.go
package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"CFOCup/database"
	"CFOCup/models"
	"CFOCup/services"
	"CFOCup/utils"
)

// GetLeaderboard 查询排行榜：已公布返回冻结快照，否则实时计算。
// 未公布时仅管理员可见实时榜。
func GetLeaderboard(c *gin.Context) {
	competitionID, _ := strconv.Atoi(c.Param("id"))

	level := 0
	if levelStr := c.Query("level"); levelStr != "" {
		level, _ = strconv.Atoi(levelStr)
	}

	var comp models.Competition
	if err := database.DB.First(&comp, competitionID).Error; err != nil {
		utils.Error(c, 4004, "比赛不存在")
		return
	}

	role := currentUserRole(c)
	if !comp.ResultsPublished && role != models.RoleAdmin && role != models.RoleRootAdmin {
		utils.Error(c, 4003, "成绩尚未公布")
		return
	}

	source, entries, err := services.GetLeaderboard(uint32(competitionID), level)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "success", gin.H{
		"competition_id": competitionID,
		"source":         source,
		"rankings":       entries,
	})
}

// --- 管理员接口 ---

// PublishResults 公布成绩：冻结榜单为快照并翻转可见性
func PublishResults(c *gin.Context) {
	competitionID, _ := strconv.Atoi(c.Param("id"))

	entries, err := services.PublishResults(uint32(competitionID), currentUserID(c), c.ClientIP())
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "Results published", gin.H{"rankings": entries})
}

// ExportResults 导出榜单（csv/json），数据源随公布状态切换
func ExportResults(c *gin.Context) {
	competitionID, _ := strconv.Atoi(c.Param("id"))
	format := c.DefaultQuery("format", "csv")

	_, entries, err := services.GetLeaderboard(uint32(competitionID), 0)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	if format == "json" {
		utils.Success(c, "success", gin.H{"rankings": entries})
		return
	}

	data, err := services.ExportCSV(entries)
	if err != nil {
		utils.Error(c, 5000, "导出失败")
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=results_%d.csv", competitionID))
	c.Data(200, "text/csv", data)
}
