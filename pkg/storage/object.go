package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"learnai_backend/internal/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const jsonContentType = "application/json"

func objectName(key string) string {
	return "state/" + key + ".json"
}

// MinioProvider MinIO 对象存储实现
type MinioProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioProvider(cfg *config.StorageConfig) (*MinioProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioProvider{Config: cfg, Client: client}, nil
}

// EnsureBucket 启动时创建 bucket（已存在则忽略）
func (p *MinioProvider) EnsureBucket(ctx context.Context) error {
	exists, err := p.Client.BucketExists(ctx, p.Config.MinioBucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return p.Client.MakeBucket(ctx, p.Config.MinioBucket, minio.MakeBucketOptions{})
}

func (p *MinioProvider) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := p.Client.GetObject(ctx, p.Config.MinioBucket, objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return nil, minioErr(err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, minioErr(err)
	}
	return data, nil
}

func (p *MinioProvider) Put(ctx context.Context, key string, value []byte) error {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, objectName(key), bytes.NewReader(value), int64(len(value)), minio.PutObjectOptions{
		ContentType: jsonContentType,
	})
	return err
}

func (p *MinioProvider) Delete(ctx context.Context, key string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, objectName(key), minio.RemoveObjectOptions{})
}

func (p *MinioProvider) Name() string { return "minio" }

func minioErr(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrNotFound
	}
	return err
}

// OSSProvider 阿里云OSS实现
type OSSProvider struct {
	Config *config.StorageConfig
	Bucket *oss.Bucket
}

func NewOSSProvider(cfg *config.StorageConfig) (*OSSProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &OSSProvider{Config: cfg, Bucket: bucket}, nil
}

func (p *OSSProvider) Get(ctx context.Context, key string) ([]byte, error) {
	body, err := p.Bucket.GetObject(objectName(key), oss.WithContext(ctx))
	if err != nil {
		return nil, ossErr(err)
	}
	defer body.Close()
	return io.ReadAll(body)
}

func (p *OSSProvider) Put(ctx context.Context, key string, value []byte) error {
	return p.Bucket.PutObject(objectName(key), bytes.NewReader(value), oss.ContentType(jsonContentType), oss.WithContext(ctx))
}

func (p *OSSProvider) Delete(ctx context.Context, key string) error {
	return ossErr(p.Bucket.DeleteObject(objectName(key), oss.WithContext(ctx)))
}

func (p *OSSProvider) Name() string { return "oss" }

func ossErr(err error) error {
	var svcErr oss.ServiceError
	if errors.As(err, &svcErr) && svcErr.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return err
}
