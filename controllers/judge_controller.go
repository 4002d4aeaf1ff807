// file: controllers/judge_controller.go
package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"CFOCup/database"
	"CFOCup/dto"
	"CFOCup/models"
	"CFOCup/services"
	"CFOCup/utils"
)

// ListJudgeCompetitions —— 当前评委被分配的比赛
func ListJudgeCompetitions(c *gin.Context) {
	judgeID := currentUserID(c)

	var competitions []models.Competition
	err := database.DB.
		Joins("JOIN cfocup_judge_assignments ja ON ja.competition_id = cfocup_competition.id").
		Where("ja.judge_id = ? AND ja.is_active = ?", judgeID, true).
		Find(&competitions).Error
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	utils.Success(c, "success", competitions)
}

// ListJudgeSubmissions —— 待评审的提交列表，附带本人评分状态
func ListJudgeSubmissions(c *gin.Context) {
	competitionID, _ := strconv.Atoi(c.Param("id"))
	judgeID := currentUserID(c)

	if err := services.VerifyJudgeAssignment(uint32(competitionID), judgeID); err != nil {
		utils.Fail(c, err)
		return
	}

	db := database.DB.Where("competition_id = ?", competitionID)
	if level := c.Query("level"); level != "" {
		db = db.Where("level = ?", level)
	}

	var subs []models.Submission
	if err := db.Order("submitted_at asc").Find(&subs).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	var myScores []models.JudgeScore
	database.DB.Where("judge_id = ?", judgeID).Find(&myScores)
	scoreMap := make(map[uint64]models.JudgeScore, len(myScores))
	for _, s := range myScores {
		scoreMap[s.SubmissionID] = s
	}

	type item struct {
		models.Submission
		MyScoreStatus   string   `json:"my_score_status"`
		MyWeightedTotal *float64 `json:"my_weighted_total,omitempty"`
	}
	items := make([]item, 0, len(subs))
	for _, sub := range subs {
		it := item{Submission: sub, MyScoreStatus: "pending"}
		if s, ok := scoreMap[sub.ID]; ok {
			if s.IsFinal {
				it.MyScoreStatus = "final"
			} else {
				it.MyScoreStatus = "draft"
			}
			total := s.WeightedTotal
			it.MyWeightedTotal = &total
		}
		items = append(items, it)
	}

	utils.Success(c, "success", items)
}

// ListJudgeCriteria —— 某关卡适用的评分维度
func ListJudgeCriteria(c *gin.Context) {
	competitionID, _ := strconv.Atoi(c.Param("id"))

	level := 0
	if levelStr := c.Query("level"); levelStr != "" {
		level, _ = strconv.Atoi(levelStr)
	}
	if level == 0 {
		var comp models.Competition
		if err := database.DB.First(&comp, competitionID).Error; err != nil {
			utils.Error(c, 4004, "比赛不存在")
			return
		}
		level = comp.CurrentLevel
	}

	var criteria []models.Criterion
	if err := database.DB.Where("is_active = ?", true).
		Order("display_order asc").Find(&criteria).Error; err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	applicable := make([]models.Criterion, 0, len(criteria))
	for _, crit := range criteria {
		if crit.AppliesTo(level) {
			applicable = append(applicable, crit)
		}
	}

	utils.Success(c, "success", applicable)
}

// GetMyScores —— 本人对某提交的打分明细
func GetMyScores(c *gin.Context) {
	submissionID, _ := strconv.Atoi(c.Param("id"))

	entries, overall, err := services.JudgeScoresFor(uint64(submissionID), currentUserID(c))
	if err != nil {
		utils.Error(c, 5000, "查询失败")
		return
	}

	resp := gin.H{"criteria_scores": entries}
	if overall != nil {
		resp["weighted_total"] = overall.WeightedTotal
		resp["overall_feedback"] = overall.OverallFeedback
		resp["is_final"] = overall.IsFinal
	} else {
		resp["is_final"] = false
	}

	utils.Success(c, "success", resp)
}

// SubmitScore —— 评委对某提交打分
func SubmitScore(c *gin.Context) {
	submissionID, _ := strconv.Atoi(c.Param("id"))

	var req dto.SubmitScoreReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 1001, "参数无效: "+err.Error())
		return
	}

	entries := make([]services.ScoreEntryInput, 0, len(req.Scores))
	for _, s := range req.Scores {
		entries = append(entries, services.ScoreEntryInput{
			CriterionID: s.CriterionID,
			Score:       s.Score,
			Feedback:    s.Feedback,
		})
	}

	score, err := services.SubmitScore(uint64(submissionID), currentUserID(c),
		entries, req.OverallFeedback, req.IsFinal, c.ClientIP())
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "Score submitted", gin.H{
		"weighted_total": score.WeightedTotal,
		"is_final":       score.IsFinal,
	})
}

// FinalizeScore —— 显式定稿
func FinalizeScore(c *gin.Context) {
	submissionID, _ := strconv.Atoi(c.Param("id"))

	score, err := services.FinalizeScore(uint64(submissionID), currentUserID(c), c.ClientIP())
	if err != nil {
		utils.Fail(c, err)
		return
	}

	utils.Success(c, "Score finalized", gin.H{
		"weighted_total": score.WeightedTotal,
		"is_final":       score.IsFinal,
	})
}
