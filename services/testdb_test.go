// file: services/testdb_test.go
package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"CFOCup/database"
	"CFOCup/models"
)

// 测试库是 sqlite 内存库。建表语句手写：模型标签里的 enum 等
// MySQL 方言没法直接迁移过去，列名与模型保持一致即可。
var testSchema = []string{
	`CREATE TABLE cfocup_competition (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		current_level INTEGER NOT NULL DEFAULT 1,
		submissions_locked BOOLEAN NOT NULL DEFAULT 0,
		results_published BOOLEAN NOT NULL DEFAULT 0,
		level_2_deadline DATETIME,
		level_3_deadline DATETIME,
		level_4_deadline DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE cfocup_task (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		competition_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		level INTEGER NOT NULL DEFAULT 1,
		deadline DATETIME,
		allowed_file_types TEXT DEFAULT 'pdf,xlsx,docx',
		max_file_size_mb INTEGER DEFAULT 50,
		max_points INTEGER DEFAULT 100,
		order_index INTEGER DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE cfocup_team (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		competition_id INTEGER NOT NULL,
		team_name TEXT NOT NULL,
		leader_id INTEGER NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE cfocup_team_members (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		team_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		joined_at DATETIME,
		UNIQUE (team_id, user_id)
	)`,
	`CREATE TABLE cfocup_task_submission (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		competition_id INTEGER NOT NULL,
		task_id INTEGER NOT NULL,
		team_id INTEGER NOT NULL,
		level INTEGER NOT NULL,
		file_name TEXT NOT NULL,
		file_ref TEXT NOT NULL,
		file_size INTEGER DEFAULT 0,
		file_hash TEXT NOT NULL,
		submitted_by INTEGER NOT NULL,
		submitted_at DATETIME,
		status TEXT DEFAULT 'submitted',
		locked_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (task_id, team_id)
	)`,
	`CREATE TABLE cfocup_scoring_criteria (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		weight INTEGER NOT NULL,
		applies_to_levels TEXT DEFAULT '2,3,4',
		display_order INTEGER DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE cfocup_task_score_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		submission_id INTEGER NOT NULL,
		criterion_id INTEGER NOT NULL,
		judge_id INTEGER NOT NULL,
		score REAL NOT NULL,
		feedback TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (submission_id, criterion_id, judge_id)
	)`,
	`CREATE TABLE cfocup_task_submission_scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		submission_id INTEGER NOT NULL,
		judge_id INTEGER NOT NULL,
		weighted_total REAL NOT NULL,
		overall_feedback TEXT,
		is_final BOOLEAN NOT NULL DEFAULT 0,
		scored_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (submission_id, judge_id)
	)`,
	`CREATE TABLE cfocup_judge_assignments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		competition_id INTEGER NOT NULL,
		judge_id INTEGER NOT NULL,
		assigned_by INTEGER NOT NULL,
		notes TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		assigned_at DATETIME,
		UNIQUE (competition_id, judge_id)
	)`,
	`CREATE TABLE cfocup_leaderboard_snapshot (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		competition_id INTEGER NOT NULL,
		team_id INTEGER NOT NULL,
		team_name TEXT NOT NULL,
		level_2_score REAL NOT NULL DEFAULT 0,
		level_3_score REAL NOT NULL DEFAULT 0,
		level_4_score REAL NOT NULL DEFAULT 0,
		cumulative_score REAL NOT NULL DEFAULT 0,
		tasks_completed INTEGER NOT NULL DEFAULT 0,
		last_submission_at DATETIME,
		final_rank INTEGER NOT NULL,
		published_at DATETIME,
		UNIQUE (competition_id, team_id)
	)`,
	`CREATE TABLE cfocup_score_appeals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		submission_id INTEGER NOT NULL,
		competition_id INTEGER NOT NULL,
		team_id INTEGER NOT NULL,
		appellant_id INTEGER NOT NULL,
		reason TEXT NOT NULL,
		original_score REAL,
		status TEXT DEFAULT 'pending',
		adjusted_score REAL,
		review_notes TEXT,
		reviewed_by INTEGER,
		reviewed_at DATETIME,
		created_at DATETIME
	)`,
	`CREATE TABLE cfocup_audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		actor_id INTEGER NOT NULL,
		actor_role TEXT NOT NULL,
		action TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id TEXT,
		competition_id INTEGER,
		meta TEXT,
		ip_address TEXT,
		created_at DATETIME
	)`,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	for _, stmt := range testSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	database.DB = db
	database.RDB = nil
	return db
}

// scoringFixture 一场进行到第 2 关的比赛：一支队伍、一个提交、
// 两个通用评分维度，评委 9 已分配
type scoringFixture struct {
	db    *gorm.DB
	comp  models.Competition
	team  models.Team
	sub   models.Submission
	critA models.Criterion
	critB models.Criterion
}

func newScoringFixture(t *testing.T) *scoringFixture {
	t.Helper()
	f := &scoringFixture{db: newTestDB(t)}

	f.comp = models.Competition{Title: "CFO杯案例分析大赛", CurrentLevel: 2}
	require.NoError(t, f.db.Create(&f.comp).Error)

	f.team = models.Team{CompetitionID: f.comp.ID, TeamName: "Alpha", LeaderID: 1}
	require.NoError(t, f.db.Create(&f.team).Error)

	f.sub = models.Submission{
		CompetitionID: f.comp.ID,
		TaskID:        1,
		TeamID:        f.team.ID,
		Level:         2,
		FileName:      "report.pdf",
		FileRef:       "task_submissions/1/report.pdf",
		FileHash:      "aaa",
		SubmittedBy:   1,
		SubmittedAt:   time.Now().UTC(),
		Status:        models.SubmissionStatusSubmitted,
	}
	require.NoError(t, f.db.Create(&f.sub).Error)

	f.critA = models.Criterion{Name: "财务分析", Weight: 60, AppliesToLevels: "2,3,4", IsActive: true}
	f.critB = models.Criterion{Name: "展示表达", Weight: 40, AppliesToLevels: "2,3,4", IsActive: true}
	require.NoError(t, f.db.Create(&f.critA).Error)
	require.NoError(t, f.db.Create(&f.critB).Error)

	f.assignJudge(t, 9)
	return f
}

func (f *scoringFixture) assignJudge(t *testing.T, judgeID uint32) {
	t.Helper()
	require.NoError(t, f.db.Create(&models.JudgeAssignment{
		CompetitionID: f.comp.ID,
		JudgeID:       judgeID,
		AssignedBy:    1,
		IsActive:      true,
		AssignedAt:    time.Now().UTC(),
	}).Error)
}
