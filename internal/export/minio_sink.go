package export

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/minio/minio-go/v7"
)

// MinIOSink decorates a local sink: after the extract is written locally,
// the artifact is uploaded to object storage under
// exports/<runID>/<filename>. The local write stays authoritative; an
// upload failure fails the extract so the bucket never holds a stale copy
// next to a newer local one.
type MinIOSink struct {
	inner  Sink
	client *minio.Client
	bucket string
	runID  string
}

func NewMinIOSink(inner Sink, client *minio.Client, bucket, runID string) *MinIOSink {
	return &MinIOSink{inner: inner, client: client, bucket: bucket, runID: runID}
}

func (s *MinIOSink) Write(ctx context.Context, name string, table *Table) (string, error) {
	path, err := s.inner.Write(ctx, name, table)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("exports/%s/%s", s.runID, filepath.Base(path))
	_, err = s.client.FPutObject(ctx, s.bucket, objectName, path, minio.PutObjectOptions{
		ContentType: contentType(path),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	return path, nil
}

func contentType(path string) string {
	switch filepath.Ext(path) {
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv"
	}
}
