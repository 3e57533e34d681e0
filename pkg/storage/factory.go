package storage

import (
	"context"
	"fmt"

	"learnai_backend/internal/config"
	"learnai_backend/pkg/database"
)

// NewProvider 按 storage.type 创建对应的后端
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.Storage.Type {
	case "memory":
		return NewMemoryProvider(), nil
	case "local":
		return NewLocalProvider(cfg.Storage.LocalPath)
	case "mysql", "sqlite":
		db, err := database.InitDB(cfg.Storage.Type, &cfg.Database)
		if err != nil {
			return nil, err
		}
		return NewDatabaseProvider(db), nil
	case "redis":
		rdb, err := database.InitRedis(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisProvider(rdb), nil
	case "minio":
		p, err := NewMinioProvider(&cfg.Storage)
		if err != nil {
			return nil, err
		}
		if err := p.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return p, nil
	case "oss":
		return NewOSSProvider(&cfg.Storage)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}
