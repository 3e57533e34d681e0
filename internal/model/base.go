package model

import (
	"time"

	"github.com/google/uuid"
)

// swagger:model KVEntry
// KVEntry 是数据库存储后端使用的键值行，value 为 JSON 文本
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:191" json:"key"`
	Value     string    `gorm:"type:longtext;not null" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// GenerateID 生成带前缀的唯一ID，例如 user_xxx、activity_xxx
func GenerateID(prefix string) string {
	return prefix + "_" + uuid.New().String()
}
