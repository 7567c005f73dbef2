package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Alishba998/glowchat.github/pkg/config"
)

// S3Presigner 對 S3 相容的物件存儲簽發限時上傳 URL。
// 簽名是純本地計算，建立時不會連線到物件存儲。
type S3Presigner struct {
	client *minio.Client
	bucket string
}

func NewS3Presigner(cfg config.S3Config) (*S3Presigner, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %v", err)
	}

	return &S3Presigner{client: client, bucket: cfg.Bucket}, nil
}

// PresignPut 簽發一個限時的 PUT URL，允許客戶端直接寫入物件存儲
func (p *S3Presigner) PresignPut(ctx context.Context, object string, expiry time.Duration) (string, error) {
	u, err := p.client.PresignedPutObject(ctx, p.bucket, object, expiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %v", object, err)
	}
	return u.String(), nil
}
