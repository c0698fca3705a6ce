package helpers

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// The service never receives image bytes: clients upload straight to the
// bucket with a time-limited presigned PUT URL.

const uploadURLExpiry = 15 * time.Minute

var (
	storageClient *minio.Client
	storageOnce   sync.Once
	storageErr    error
)

func storage() (*minio.Client, error) {
	storageOnce.Do(func() {
		endpoint := os.Getenv("STORAGE_ENDPOINT")
		if endpoint == "" {
			storageErr = fmt.Errorf("STORAGE_ENDPOINT is not configured")
			return
		}
		storageClient, storageErr = minio.New(endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv("STORAGE_ACCESS_KEY"), os.Getenv("STORAGE_SECRET_KEY"), ""),
			Secure: os.Getenv("STORAGE_USE_SSL") != "false",
		})
	})
	return storageClient, storageErr
}

// BuildImageObjectName constructs the bucket key for an order photo:
// <orderId>/<before|after>_<timestamp>.<ext>
func BuildImageObjectName(orderID string, imageType string, ext string, now time.Time) string {
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("%s/%s_%d.%s", orderID, imageType, now.Unix(), ext)
}

// GenerateUploadURL returns a presigned PUT URL for one order photo plus the
// object name the caller must store in the order's image list afterwards.
func GenerateUploadURL(ctx context.Context, orderID string, imageType string, ext string) (uploadURL string, objectName string, err error) {
	client, err := storage()
	if err != nil {
		return "", "", err
	}
	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		bucket = "order-images"
	}

	objectName = BuildImageObjectName(orderID, imageType, ext, time.Now())
	var presigned *url.URL
	presigned, err = client.PresignedPutObject(ctx, bucket, objectName, uploadURLExpiry)
	if err != nil {
		return "", "", err
	}
	return presigned.String(), objectName, nil
}
