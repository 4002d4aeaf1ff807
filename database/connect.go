// file: database/connect.go
package database

import (
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"CFOCup/models"
)

var DB *gorm.DB

func Connect(dsn string) {
	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB:", err)
	}

	// 连接池配置：1小时的最大存活时间用于规避 MySQL wait_timeout
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection successfully established and connection pool configured.")
}

// MigrateTables 自动迁移（生产环境建议禁用，改用 SQL 迁移脚本）
func MigrateTables() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Competition{},
		&models.Task{},
		&models.Team{},
		&models.TeamMember{},
		&models.Submission{},
		&models.Criterion{},
		&models.ScoreEntry{},
		&models.JudgeScore{},
		&models.JudgeAssignment{},
		&models.LeaderboardSnapshot{},
		&models.Appeal{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	log.Println("Database migration completed.")
}
