package service

import (
	"context"
	"testing"

	"OwlTurf/internal/dbtest"
	"OwlTurf/internal/interfaces"
	"OwlTurf/internal/interfaces/mocks"
	"OwlTurf/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFileServiceLimits(t *testing.T) {
	svc := NewFileService(mocks.NewFileStore(t), map[string]float64{"reels": 100, "avatars": 5}, 10, dbtest.Logger())

	assert.Equal(t, 100.0, svc.MaxSizeMB("reels"))
	assert.Equal(t, 5.0, svc.MaxSizeMB("avatars"))
	assert.Equal(t, 10.0, svc.MaxSizeMB("documents"))
}

func TestFileServiceUploadDefaultsBucket(t *testing.T) {
	store := mocks.NewFileStore(t)
	svc := NewFileService(store, map[string]float64{"documents": 2}, 10, dbtest.Logger())
	content := []byte("%PDF-1.4")

	store.On("Upload", mock.Anything, content, "invoice.pdf", DefaultBucket, "", 2.0).
		Return(&interfaces.UploadResult{Path: "documents/x_invoice.pdf", Filename: "x_invoice.pdf", SizeBytes: 8}, nil).
		Once()

	res, err := svc.Upload(context.Background(), content, "invoice.pdf", "", "")
	require.NoError(t, err)
	assert.Equal(t, "documents/x_invoice.pdf", res.Path)
}

func TestFileServicePassesStoreErrors(t *testing.T) {
	store := mocks.NewFileStore(t)
	svc := NewFileService(store, nil, 1, dbtest.Logger())

	tooBig := &storage.FileTooLargeError{SizeMB: 3, MaxMB: 1}
	store.On("Upload", mock.Anything, mock.Anything, "clip.mp4", "reels", "u1", 1.0).Return(nil, tooBig).Once()
	_, err := svc.Upload(context.Background(), make([]byte, 16), "clip.mp4", "reels", "u1")
	assert.ErrorIs(t, err, storage.ErrFileTooLarge)

	store.On("Delete", mock.Anything, "reels/missing.mp4").Return(false, nil).Once()
	ok, err := svc.Delete(context.Background(), "reels/missing.mp4")
	require.NoError(t, err)
	assert.False(t, ok)

	store.On("Retrieve", mock.Anything, "../etc/passwd").Return(nil, storage.ErrFileNotFound).Once()
	_, err = svc.Retrieve(context.Background(), "../etc/passwd")
	assert.ErrorIs(t, err, storage.ErrFileNotFound)
}
