// file: database/upsert.go
package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Upsert 按自然键做幂等写入：存在即覆盖指定列，不存在则创建。
// 提交记录、评分记录、评委分配、榜单快照的并发写都收敛到这里，
// 依赖自然键上的唯一索引保证不会出现重复行（last write wins）。
func Upsert(tx *gorm.DB, keyColumns []string, updateColumns []string, value interface{}) error {
	cols := make([]clause.Column, 0, len(keyColumns))
	for _, name := range keyColumns {
		cols = append(cols, clause.Column{Name: name})
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   cols,
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(value).Error
}
