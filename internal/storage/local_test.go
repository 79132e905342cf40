package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(t.TempDir(), "/api/v1/files", nil)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }
	return s
}

func TestNewLocalStorageCreatesBuckets(t *testing.T) {
	base := t.TempDir()
	_, err := NewLocalStorage(base, "/files", nil)
	require.NoError(t, err)
	for _, b := range DefaultBuckets {
		info, err := os.Stat(filepath.Join(base, b))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestUploadSameNameGivesDistinctPaths(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	first, err := s.Upload(ctx, []byte("one"), "avatar.png", "profile_images", "u1", 5)
	require.NoError(t, err)
	second, err := s.Upload(ctx, []byte("two"), "avatar.png", "profile_images", "u1", 5)
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
	assert.True(t, strings.HasPrefix(first.Path, "profile_images/u1_20260301_093000_"))
	assert.True(t, strings.HasSuffix(first.Path, "_avatar.png"))
	assert.Equal(t, "/api/v1/files/"+first.Path, first.URL)
	assert.Equal(t, int64(3), first.SizeBytes)

	got, err := s.Retrieve(ctx, first.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), got)

	deleted, err := s.Delete(ctx, first.Path)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err = s.Retrieve(ctx, second.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)

	_, err = s.Retrieve(ctx, first.Path)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestUploadLeavesNoTempFiles(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.Upload(context.Background(), []byte("x"), "a.txt", "documents", "", 1)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(s.basePath, "documents"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.HasPrefix(entries[0].Name(), tmpFilePrefix))
}

func TestUploadRejectsUnknownBucket(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.Upload(context.Background(), []byte("x"), "a.txt", "secrets", "", 1)
	assert.ErrorIs(t, err, ErrInvalidBucket)
	assert.Contains(t, err.Error(), "profile_images")
}

func TestUploadRejectsOversizedContent(t *testing.T) {
	s := newTestStorage(t)
	content := make([]byte, 2*bytesPerMB)
	_, err := s.Upload(context.Background(), content, "big.bin", "documents", "", 1)
	require.ErrorIs(t, err, ErrFileTooLarge)

	var tooLarge *FileTooLargeError
	require.True(t, errors.As(err, &tooLarge))
	assert.Equal(t, "file size (2.00MB) exceeds maximum allowed size (1MB)", tooLarge.Error())
}

func TestUploadSanitizesNames(t *testing.T) {
	s := newTestStorage(t)
	res, err := s.Upload(context.Background(), []byte("x"), "../../my clip<>!.mp4", "reels", "a/b", 10)
	require.NoError(t, err)

	assert.NotContains(t, res.Filename, "/")
	assert.True(t, strings.HasPrefix(res.Filename, "ab_"))
	assert.True(t, strings.HasSuffix(res.Filename, "_my clip.mp4"))
}

func TestUploadTruncatesLongStem(t *testing.T) {
	s := newTestStorage(t)
	res, err := s.Upload(context.Background(), []byte("x"), strings.Repeat("a", 80)+".txt", "documents", "", 1)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Filename, "_"+strings.Repeat("a", maxStemRunes)+".txt"))
}

func TestUploadTruncatesLongExtension(t *testing.T) {
	s := newTestStorage(t)
	res, err := s.Upload(context.Background(), []byte("x"), "a."+strings.Repeat("x", 300), "documents", "", 1)
	require.NoError(t, err)

	ext := filepath.Ext(res.Filename)
	assert.Equal(t, "."+strings.Repeat("x", maxExtRunes-1), ext)
	assert.True(t, strings.HasSuffix(res.Filename, "_a"+ext))

	_, err = os.Stat(filepath.Join(s.basePath, filepath.FromSlash(res.Path)))
	assert.NoError(t, err)
}

func TestRetrieveRejectsEscapingPaths(t *testing.T) {
	s := newTestStorage(t)
	outside := filepath.Join(filepath.Dir(s.basePath), "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o600))
	t.Cleanup(func() { os.Remove(outside) })

	for _, p := range []string{
		"../outside.txt",
		"documents/../../outside.txt",
		"/etc/passwd",
		"documents",
		"unknown/file.txt",
		"",
	} {
		_, err := s.Retrieve(context.Background(), p)
		assert.ErrorIs(t, err, ErrFileNotFound, p)

		deleted, err := s.Delete(context.Background(), p)
		assert.NoError(t, err, p)
		assert.False(t, deleted, p)
	}

	_, err := os.Stat(outside)
	assert.NoError(t, err)
}

func TestDeleteMissingFile(t *testing.T) {
	s := newTestStorage(t)
	deleted, err := s.Delete(context.Background(), "documents/nope.txt")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUploadHonoursCancelledContext(t *testing.T) {
	s := newTestStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Upload(ctx, []byte("x"), "a.txt", "documents", "", 1)
	assert.ErrorIs(t, err, context.Canceled)
}
