package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound 表示 key 不存在，Store.Load 会把它当作空状态处理
var ErrNotFound = errors.New("storage: key not found")

// Provider 定义通用的键值存储接口
type Provider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Name() string
}

// Store 在 Provider 之上提供 JSON 编解码、命名空间和状态锁
type Store struct {
	Provider  Provider
	Namespace string

	mu sync.Mutex
}

func NewStore(provider Provider, namespace string) *Store {
	return &Store{Provider: provider, Namespace: namespace}
}

func (s *Store) key(key string) string {
	if s.Namespace == "" {
		return key
	}
	return s.Namespace + "_" + key
}

// Load 读取 key 并解码到 dst，key 不存在时返回 false 且不报错
func (s *Store) Load(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := s.Provider.Get(ctx, s.key(key))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) Save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Provider.Put(ctx, s.key(key), data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	err := s.Provider.Delete(ctx, s.key(key))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Atomically 在状态锁内执行 fn，保证一次操作中的读写对其他请求整体可见。
// fn 内不能再次调用 Atomically。
func (s *Store) Atomically(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// Ping 读取一个探测 key 检查后端可用性，key 不存在视为正常
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.Provider.Get(ctx, s.key("ping"))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
