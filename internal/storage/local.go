package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"OwlTurf/internal/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidBucket = errors.New("invalid bucket")
	ErrFileTooLarge  = errors.New("file too large")
	ErrFileNotFound  = errors.New("file not found")
)

// DefaultBuckets are the storage namespaces known to the API.
var DefaultBuckets = []string{"profile_images", "product_images", "venue_images", "reels", "documents"}

const (
	maxStemRunes  = 50
	maxExtRunes   = 16
	nameAttempts  = 3
	bytesPerMB    = 1024 * 1024
	tmpFilePrefix = ".tmp-"
)

// FileTooLargeError carries the measured and permitted sizes.
type FileTooLargeError struct {
	SizeMB float64
	MaxMB  float64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file size (%.2fMB) exceeds maximum allowed size (%gMB)", e.SizeMB, e.MaxMB)
}

func (e *FileTooLargeError) Unwrap() error { return ErrFileTooLarge }

// LocalStorage keeps files under basePath/<bucket>/<generated name>.
type LocalStorage struct {
	basePath  string
	urlPrefix string
	buckets   []string
	known     map[string]struct{}
	now       func() time.Time
}

var _ interfaces.FileStore = (*LocalStorage)(nil)

// NewLocalStorage creates basePath and one directory per bucket.
func NewLocalStorage(basePath, urlPrefix string, buckets []string) (*LocalStorage, error) {
	if len(buckets) == 0 {
		buckets = DefaultBuckets
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolve storage path: %w", err)
	}
	s := &LocalStorage{
		basePath:  abs,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		buckets:   append([]string(nil), buckets...),
		known:     make(map[string]struct{}, len(buckets)),
		now:       time.Now,
	}
	for _, b := range buckets {
		s.known[b] = struct{}{}
		if err := os.MkdirAll(filepath.Join(abs, b), 0o755); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", b, err)
		}
	}
	return s, nil
}

func (s *LocalStorage) Buckets() []string {
	return append([]string(nil), s.buckets...)
}

// Upload writes content under a freshly generated name. The name is made
// visible only after the whole content is on disk.
func (s *LocalStorage) Upload(ctx context.Context, content []byte, originalName, bucket, prefix string, maxSizeMB float64) (*interfaces.UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := s.known[bucket]; !ok {
		return nil, fmt.Errorf("%w %q, must be one of: %s", ErrInvalidBucket, bucket, strings.Join(s.buckets, ", "))
	}
	sizeMB := float64(len(content)) / bytesPerMB
	if maxSizeMB > 0 && sizeMB > maxSizeMB {
		return nil, &FileTooLargeError{SizeMB: sizeMB, MaxMB: maxSizeMB}
	}

	dir := filepath.Join(s.basePath, bucket)
	tmp, err := os.CreateTemp(dir, tmpFilePrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	for i := 0; i < nameAttempts; i++ {
		name := s.generateName(originalName, prefix)
		// Link fails instead of replacing an existing file.
		err := os.Link(tmpName, filepath.Join(dir, name))
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("publish file: %w", err)
		}
		rel := bucket + "/" + name
		return &interfaces.UploadResult{
			Path:      rel,
			URL:       s.URL(rel),
			Filename:  name,
			SizeBytes: int64(len(content)),
		}, nil
	}
	return nil, fmt.Errorf("publish file: no free name after %d attempts", nameAttempts)
}

// Retrieve returns ErrFileNotFound for missing files and for paths outside
// the known buckets.
func (s *LocalStorage) Retrieve(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, ok := s.resolve(p)
	if !ok {
		return nil, ErrFileNotFound
	}
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}

func (s *LocalStorage) Delete(ctx context.Context, p string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	full, ok := s.resolve(p)
	if !ok {
		return false, nil
	}
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", p, err)
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("remove %s: %w", p, err)
	}
	return true, nil
}

func (s *LocalStorage) URL(p string) string {
	return s.urlPrefix + "/" + strings.TrimPrefix(p, "/")
}

// resolve maps a relative "bucket/name" path onto disk. It rejects absolute
// paths, anything that climbs out of basePath and anything outside a bucket.
func (s *LocalStorage) resolve(p string) (string, bool) {
	if p == "" || strings.ContainsRune(p, '\\') || strings.ContainsRune(p, 0) || path.IsAbs(p) || filepath.IsAbs(p) {
		return "", false
	}
	clean := path.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", false
	}
	bucket, name, found := strings.Cut(clean, "/")
	if !found || name == "" {
		return "", false
	}
	if _, ok := s.known[bucket]; !ok {
		return "", false
	}
	full := filepath.Join(s.basePath, filepath.FromSlash(clean))
	rel, err := filepath.Rel(s.basePath, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return full, true
}

// generateName builds [prefix_]YYYYMMDD_HHMMSS_<8 hex>_<stem><ext>.
func (s *LocalStorage) generateName(originalName, prefix string) string {
	base := filepath.Base(filepath.ToSlash(originalName))
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	stem = truncateRunes(sanitize(stem), maxStemRunes)
	if strings.Trim(stem, ". ") == "" {
		stem = "file"
	}
	ext = truncateRunes(sanitize(ext), maxExtRunes)

	short := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	name := fmt.Sprintf("%s_%s_%s%s", s.now().Format("20060102_150405"), short, stem, ext)
	if prefix = sanitize(prefix); prefix != "" {
		name = prefix + "_" + name
	}
	return name
}

// sanitize keeps letters, digits, '.', '_', '-' and spaces.
func sanitize(v string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("._- ", r) {
			return r
		}
		return -1
	}, v)
}

func truncateRunes(v string, n int) string {
	r := []rune(v)
	if len(r) <= n {
		return v
	}
	return string(r[:n])
}
