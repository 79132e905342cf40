package service

import (
	"context"

	"OwlTurf/internal/interfaces"
	"OwlTurf/internal/metrics"

	"github.com/sirupsen/logrus"
)

// DefaultBucket receives uploads that do not name a bucket.
const DefaultBucket = "documents"

// FileService 文件上传下载，按 bucket 限制大小
type FileService struct {
	store    interfaces.FileStore
	limits   map[string]float64
	fallback float64
	logger   *logrus.Logger
}

// NewFileService uses limits (MB per bucket) and fallbackMB for buckets
// without an explicit limit.
func NewFileService(store interfaces.FileStore, limits map[string]float64, fallbackMB float64, logger *logrus.Logger) *FileService {
	return &FileService{
		store:    store,
		limits:   limits,
		fallback: fallbackMB,
		logger:   logger,
	}
}

// MaxSizeMB is the upload limit for bucket.
func (s *FileService) MaxSizeMB(bucket string) float64 {
	if v, ok := s.limits[bucket]; ok && v > 0 {
		return v
	}
	return s.fallback
}

func (s *FileService) Upload(ctx context.Context, content []byte, originalName, bucket, prefix string) (*interfaces.UploadResult, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}
	res, err := s.store.Upload(ctx, content, originalName, bucket, prefix, s.MaxSizeMB(bucket))
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{"bucket": bucket, "filename": originalName}).Warn("upload rejected")
		return nil, err
	}
	metrics.RecordUpload(bucket, res.SizeBytes)
	s.logger.WithFields(logrus.Fields{"path": res.Path, "size": res.SizeBytes}).Info("file uploaded")
	return res, nil
}

func (s *FileService) Retrieve(ctx context.Context, path string) ([]byte, error) {
	return s.store.Retrieve(ctx, path)
}

func (s *FileService) Delete(ctx context.Context, path string) (bool, error) {
	ok, err := s.store.Delete(ctx, path)
	if err == nil && ok {
		s.logger.WithField("path", path).Info("file deleted")
	}
	return ok, err
}

func (s *FileService) Buckets() []string {
	return s.store.Buckets()
}
