package api

import (
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"OwlTurf/internal/service"
	"OwlTurf/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const bytesPerMB = 1024 * 1024

// FileHandler 文件上传、下载、删除接口
type FileHandler struct {
	fileService *service.FileService
	logger      *logrus.Logger
}

func NewFileHandler(fileService *service.FileService, logger *logrus.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// UploadFile 上传文件到指定 bucket，bucket 与 prefix 可放在表单或查询参数中
// POST /api/v1/files/upload
func (h *FileHandler) UploadFile(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		missingField(c, "body", "file")
		return
	}
	bucket := c.DefaultPostForm("bucket", c.Query("bucket"))
	prefix := c.DefaultPostForm("prefix", c.Query("prefix"))
	if bucket == "" {
		bucket = service.DefaultBucket
	}

	// reject oversized parts before reading them into memory
	maxMB := h.fileService.MaxSizeMB(bucket)
	if maxMB > 0 && float64(fh.Size)/bytesPerMB > maxMB {
		respondError(c, h.logger, &storage.FileTooLargeError{SizeMB: float64(fh.Size) / bytesPerMB, MaxMB: maxMB})
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	res, err := h.fileService.Upload(c.Request.Context(), content, fh.Filename, bucket, prefix)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "File uploaded successfully",
		"file_path":  res.Path,
		"file_url":   res.URL,
		"filename":   res.Filename,
		"size_bytes": res.SizeBytes,
	})
}

// GetFile 读取文件，Content-Type 优先按扩展名，其次按内容识别
// GET /api/v1/files/*path
func (h *FileHandler) GetFile(c *gin.Context) {
	p := strings.TrimPrefix(c.Param("path"), "/")
	data, err := h.fileService.Retrieve(c.Request.Context(), p)
	if err != nil {
		if errorStatus(err) == http.StatusNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "File not found"})
			return
		}
		respondError(c, h.logger, err)
		return
	}
	c.Data(http.StatusOK, contentType(p, data), data)
}

// DeleteFile 删除文件
// DELETE /api/v1/files/*path
func (h *FileHandler) DeleteFile(c *gin.Context) {
	p := strings.TrimPrefix(c.Param("path"), "/")
	ok, err := h.fileService.Delete(c.Request.Context(), p)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "File not found or already deleted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully", "file_path": p})
}

func contentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return mimetype.Detect(data).String()
}
