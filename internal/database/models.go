package database

import (
	"time"

	"gorm.io/datatypes"
)

// Entry 表示键值存储中的一条记录，Value 为 JSON 序列化后的分区内容。
type Entry struct {
	Key       string         `gorm:"primaryKey;size:255"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName pins the table name independent of the struct name.
func (Entry) TableName() string {
	return "kv_entries"
}
