// file: services/leaderboard_service.go
package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"gorm.io/gorm"

	"CFOCup/database"
	"CFOCup/models"
)

// LeaderboardEntry 榜单上的一行（实时计算结果，只有快照才落库）
type LeaderboardEntry struct {
	TeamID           uint32     `json:"team_id"`
	TeamName         string     `json:"team_name"`
	Level2Score      float64    `json:"level_2_score"`
	Level3Score      float64    `json:"level_3_score"`
	Level4Score      float64    `json:"level_4_score"`
	CumulativeScore  float64    `json:"cumulative_score"`
	TasksCompleted   uint       `json:"tasks_completed"`
	LastSubmissionAt *time.Time `json:"last_submission_at"`
	Rank             uint       `json:"rank"`
}

// BuildEntries 由原始数据聚合出每队的逐关得分与累计得分。纯函数。
//   - 每个提交的得分 = 所有已定稿评委 weighted_total 的平均值，
//     无人定稿按 0 计入（不剔除）
//   - overrides 为申诉裁定的覆盖分（submission -> adjusted_score），
//     存在即替代该提交的评委均分
//   - 累计得分 = 第 2/3/4 关得分之和；levelFilter 非 0 时只计该关
//   - tasks_completed 统计有至少一位定稿评委（或申诉覆盖分）的提交
func BuildEntries(teams []models.Team, subs []models.Submission, finals []models.JudgeScore, overrides map[uint64]float64, levelFilter int) []LeaderboardEntry {
	// 每个提交的定稿分汇总
	type acc struct {
		sum   float64
		count int
	}
	bySubmission := make(map[uint64]*acc)
	for _, js := range finals {
		if !js.IsFinal {
			continue
		}
		a := bySubmission[js.SubmissionID]
		if a == nil {
			a = &acc{}
			bySubmission[js.SubmissionID] = a
		}
		a.sum += js.WeightedTotal
		a.count++
	}

	byTeam := make(map[uint32]*LeaderboardEntry, len(teams))
	entries := make([]LeaderboardEntry, 0, len(teams))
	for _, t := range teams {
		byTeam[t.ID] = &LeaderboardEntry{TeamID: t.ID, TeamName: t.TeamName}
	}

	for _, s := range subs {
		e := byTeam[s.TeamID]
		if e == nil {
			continue
		}

		submittedAt := s.SubmittedAt
		if e.LastSubmissionAt == nil || submittedAt.After(*e.LastSubmissionAt) {
			e.LastSubmissionAt = &submittedAt
		}

		if levelFilter != 0 && s.Level != levelFilter {
			continue
		}

		score := 0.0
		scored := false
		if a := bySubmission[s.ID]; a != nil && a.count > 0 {
			score = a.sum / float64(a.count)
			scored = true
		}
		if adjusted, ok := overrides[s.ID]; ok {
			score = adjusted
			scored = true
		}
		if scored {
			e.TasksCompleted++
		}

		switch s.Level {
		case 2:
			e.Level2Score += score
		case 3:
			e.Level3Score += score
		case 4:
			e.Level4Score += score
		}
	}

	for _, t := range teams {
		e := byTeam[t.ID]
		e.Level2Score = Round2(e.Level2Score)
		e.Level3Score = Round2(e.Level3Score)
		e.Level4Score = Round2(e.Level4Score)
		e.CumulativeScore = Round2(e.Level2Score + e.Level3Score + e.Level4Score)
		entries = append(entries, *e)
	}
	return entries
}

// RankEntries 排序并赋名次：累计分降序，先交卷者优先，
// 从未交卷的队伍视为时间 +∞ 排在最后，最终用队伍 ID 升序兜底，
// 保证全序且确定。名次按排序位置 1,2,3,… 依次分配。
func RankEntries(entries []LeaderboardEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.CumulativeScore != b.CumulativeScore {
			return a.CumulativeScore > b.CumulativeScore
		}
		if a.LastSubmissionAt == nil && b.LastSubmissionAt != nil {
			return false
		}
		if a.LastSubmissionAt != nil && b.LastSubmissionAt == nil {
			return true
		}
		if a.LastSubmissionAt != nil && b.LastSubmissionAt != nil &&
			!a.LastSubmissionAt.Equal(*b.LastSubmissionAt) {
			return a.LastSubmissionAt.Before(*b.LastSubmissionAt)
		}
		return a.TeamID < b.TeamID
	})
	for i := range entries {
		entries[i].Rank = uint(i + 1)
	}
}

// adjustedOverrides 取比赛内所有裁定为 adjusted 的申诉覆盖分，
// 同一提交有多条时以最近一条裁定为准
func adjustedOverrides(competitionID uint32) (map[uint64]float64, error) {
	var appeals []models.Appeal
	err := database.DB.
		Where("competition_id = ? AND status = ?", competitionID, models.AppealStatusAdjusted).
		Order("reviewed_at asc").
		Find(&appeals).Error
	if err != nil {
		return nil, err
	}
	overrides := make(map[uint64]float64, len(appeals))
	for _, a := range appeals {
		if a.AdjustedScore != nil {
			overrides[a.SubmissionID] = *a.AdjustedScore
		}
	}
	return overrides, nil
}

// ComputeLive 实时计算榜单。幂等：相同的评分/申诉状态必然得到相同结果。
func ComputeLive(comp *models.Competition, levelFilter int) ([]LeaderboardEntry, error) {
	var teams []models.Team
	if err := database.DB.Where("competition_id = ?", comp.ID).Find(&teams).Error; err != nil {
		return nil, err
	}

	var subs []models.Submission
	if err := database.DB.Where("competition_id = ?", comp.ID).Find(&subs).Error; err != nil {
		return nil, err
	}

	var finals []models.JudgeScore
	err := database.DB.
		Joins("JOIN cfocup_task_submission s ON s.id = cfocup_task_submission_scores.submission_id").
		Where("s.competition_id = ? AND cfocup_task_submission_scores.is_final = ?", comp.ID, true).
		Find(&finals).Error
	if err != nil {
		return nil, err
	}

	overrides, err := adjustedOverrides(comp.ID)
	if err != nil {
		return nil, err
	}

	entries := BuildEntries(teams, subs, finals, overrides, levelFilter)
	RankEntries(entries)
	return entries, nil
}

// AggregatedSubmissionScore 聚合器当前对某个提交的取值：
// 先查申诉覆盖分，否则取已定稿评委的均分；无人定稿返回 nil。
func AggregatedSubmissionScore(submissionID uint64) (*float64, error) {
	var appeal models.Appeal
	err := database.DB.
		Where("submission_id = ? AND status = ?", submissionID, models.AppealStatusAdjusted).
		Order("reviewed_at desc").
		First(&appeal).Error
	if err == nil && appeal.AdjustedScore != nil {
		v := *appeal.AdjustedScore
		return &v, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var finals []models.JudgeScore
	if err := database.DB.
		Where("submission_id = ? AND is_final = ?", submissionID, true).
		Find(&finals).Error; err != nil {
		return nil, err
	}
	if len(finals) == 0 {
		return nil, nil
	}
	sum := 0.0
	for _, js := range finals {
		sum += js.WeightedTotal
	}
	mean := Round2(sum / float64(len(finals)))
	return &mean, nil
}

// 快照行的覆盖列：除自然键 (competition_id, team_id) 外的全部字段
var snapshotUpdateColumns = []string{
	"team_name", "level_2_score", "level_3_score", "level_4_score",
	"cumulative_score", "tasks_completed", "last_submission_at",
	"final_rank", "published_at",
}

func snapshotToEntries(rows []models.LeaderboardSnapshot) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, LeaderboardEntry{
			TeamID:           r.TeamID,
			TeamName:         r.TeamName,
			Level2Score:      r.Level2Score,
			Level3Score:      r.Level3Score,
			Level4Score:      r.Level4Score,
			CumulativeScore:  r.CumulativeScore,
			TasksCompleted:   r.TasksCompleted,
			LastSubmissionAt: r.LastSubmissionAt,
			Rank:             r.FinalRank,
		})
	}
	return entries
}

// GetLeaderboard 读取榜单：已公布返回冻结快照，否则实时计算。
// 只有公布后的快照才进 Redis 缓存；未公布的实时榜每次重算，
// 任何评分/申诉写入都立即可见。
func GetLeaderboard(competitionID uint32, levelFilter int) (string, []LeaderboardEntry, error) {
	var comp models.Competition
	if err := database.DB.First(&comp, competitionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, NewError(KindNotFound, "比赛不存在")
		}
		return "", nil, err
	}

	if comp.ResultsPublished {
		cacheKey := fmt.Sprintf("scoreboard:%d:snapshot", competitionID)
		if database.RDB != nil {
			if val, err := database.RDB.Get(database.Ctx, cacheKey).Result(); err == nil {
				var cached []LeaderboardEntry
				if json.Unmarshal([]byte(val), &cached) == nil {
					return "snapshot", cached, nil
				}
			}
		}

		var rows []models.LeaderboardSnapshot
		if err := database.DB.Where("competition_id = ?", competitionID).
			Order("final_rank asc").Find(&rows).Error; err != nil {
			return "", nil, err
		}
		entries := snapshotToEntries(rows)

		if database.RDB != nil {
			if jsonData, err := json.Marshal(entries); err == nil {
				database.RDB.Set(database.Ctx, cacheKey, jsonData, 5*time.Minute)
			}
		}
		return "snapshot", entries, nil
	}

	entries, err := ComputeLive(&comp, levelFilter)
	if err != nil {
		return "", nil, err
	}
	return "live", entries, nil
}

// PublishResults 冻结当前榜单为快照并公布成绩。
// 快照按比赛整体替换，重复公布即整体重算重写。
func PublishResults(competitionID, actorID uint32, ip string) ([]LeaderboardEntry, error) {
	var comp models.Competition
	if err := database.DB.First(&comp, competitionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindNotFound, "比赛不存在")
		}
		return nil, err
	}

	var teamCount int64
	if err := database.DB.Model(&models.Team{}).
		Where("competition_id = ?", competitionID).Count(&teamCount).Error; err != nil {
		return nil, err
	}
	if teamCount == 0 {
		return nil, NewError(KindPrecondition, "比赛没有任何参赛队伍，无法公布成绩")
	}

	entries, err := ComputeLive(&comp, 0)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// 先清空旧快照，再整体写入；并发公布靠 (competition, team)
		// 自然键上的幂等 upsert 收敛，不会撞唯一索引
		if err := tx.Where("competition_id = ?", competitionID).
			Delete(&models.LeaderboardSnapshot{}).Error; err != nil {
			return err
		}
		for _, e := range entries {
			row := models.LeaderboardSnapshot{
				CompetitionID:    competitionID,
				TeamID:           e.TeamID,
				TeamName:         e.TeamName,
				Level2Score:      e.Level2Score,
				Level3Score:      e.Level3Score,
				Level4Score:      e.Level4Score,
				CumulativeScore:  e.CumulativeScore,
				TasksCompleted:   e.TasksCompleted,
				LastSubmissionAt: e.LastSubmissionAt,
				FinalRank:        e.Rank,
				PublishedAt:      now,
			}
			if err := database.Upsert(tx,
				[]string{"competition_id", "team_id"},
				snapshotUpdateColumns, &row); err != nil {
				return err
			}
		}
		return tx.Model(&models.Competition{}).
			Where("id = ?", competitionID).
			Update("results_published", true).Error
	})
	if err != nil {
		return nil, err
	}

	// 公布后清空该比赛的榜单缓存
	if database.RDB != nil {
		pattern := fmt.Sprintf("scoreboard:%d:*", competitionID)
		if keys, err := database.RDB.Keys(database.Ctx, pattern).Result(); err == nil && len(keys) > 0 {
			database.RDB.Del(database.Ctx, keys...)
			log.Printf("Cleared %d scoreboard cache keys from Redis.", len(keys))
		}
	}

	RecordAudit(actorID, "admin", "results_published", "competition",
		fmt.Sprintf("%d", competitionID), competitionID,
		map[string]interface{}{"team_count": len(entries)}, ip)

	return entries, nil
}

// ExportCSV 按 rank/team/逐关/累计/最后交卷时间导出 CSV
func ExportCSV(entries []LeaderboardEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Rank", "Team Name", "Level 2 Score", "Level 3 Score",
		"Level 4 Score", "Cumulative Score", "Tasks Completed", "Last Submission"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, e := range entries {
		last := ""
		if e.LastSubmissionAt != nil {
			last = e.LastSubmissionAt.UTC().Format(time.RFC3339)
		}
		row := []string{
			fmt.Sprintf("%d", e.Rank),
			e.TeamName,
			fmt.Sprintf("%.2f", e.Level2Score),
			fmt.Sprintf("%.2f", e.Level3Score),
			fmt.Sprintf("%.2f", e.Level4Score),
			fmt.Sprintf("%.2f", e.CumulativeScore),
			fmt.Sprintf("%d", e.TasksCompleted),
			last,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
