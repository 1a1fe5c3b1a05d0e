package minio

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/CineMood/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CineMood/pkg/errors"
)

// DownloadResult holds an object's content and metadata.
type DownloadResult struct {
	Data         []byte
	ContentType  string
	Size         int64
	ETag         string
	LastModified time.Time
}

// Download reads an object from the configured bucket into memory.
func (c *MinIOClient) Download(ctx context.Context, objectKey string) (*DownloadResult, error) {
	obj, err := c.client.GetObject(ctx, c.config.Bucket, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to get object")
	}
	defer obj.Close()

	stat, err := obj.Stat()
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrObjectNotFound.WithDetail(objectKey)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to stat object")
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to read object")
	}

	c.logger.Debug("Downloaded object",
		logging.String("bucket", c.config.Bucket),
		logging.String("key", objectKey),
		logging.Int64("size", stat.Size),
	)
	return &DownloadResult{
		Data:         data,
		ContentType:  stat.ContentType,
		Size:         stat.Size,
		ETag:         stat.ETag,
		LastModified: stat.LastModified,
	}, nil
}

// Open returns a reader over an object's content.  The dataset loader uses it
// as a byte source.
func (c *MinIOClient) Open(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	res, err := c.Download(ctx, objectKey)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(res.Data)), nil
}

//Personal.AI order the ending
