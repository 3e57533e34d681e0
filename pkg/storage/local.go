package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalProvider 本地文件实现，每个 key 对应 LocalPath 下的一个 JSON 文件
type LocalProvider struct {
	Dir string
}

func NewLocalProvider(dir string) (*LocalProvider, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return &LocalProvider{Dir: dir}, nil
}

func (p *LocalProvider) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(p.Dir, key+".json"), nil
}

func (p *LocalProvider) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := p.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, err
}

func (p *LocalProvider) Put(ctx context.Context, key string, value []byte) error {
	path, err := p.path(key)
	if err != nil {
		return err
	}

	// 先写临时文件再重命名，避免进程中断留下半个文件
	tmp, err := os.CreateTemp(p.Dir, key+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (p *LocalProvider) Delete(ctx context.Context, key string) error {
	path, err := p.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (p *LocalProvider) Name() string { return "local" }
