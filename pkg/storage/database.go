package storage

import (
	"context"
	"errors"
	"time"

	"learnai_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DatabaseProvider 基于 gorm 的实现，MySQL 与 SQLite 共用 kv_entries 表
type DatabaseProvider struct {
	DB *gorm.DB
}

func NewDatabaseProvider(db *gorm.DB) *DatabaseProvider {
	return &DatabaseProvider{DB: db}
}

func (p *DatabaseProvider) Get(ctx context.Context, key string) ([]byte, error) {
	var entry model.KVEntry
	err := p.DB.WithContext(ctx).Where("`key` = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(entry.Value), nil
}

func (p *DatabaseProvider) Put(ctx context.Context, key string, value []byte) error {
	entry := model.KVEntry{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}
	return p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (p *DatabaseProvider) Delete(ctx context.Context, key string) error {
	return p.DB.WithContext(ctx).Where("`key` = ?", key).Delete(&model.KVEntry{}).Error
}

func (p *DatabaseProvider) Name() string { return "database" }
