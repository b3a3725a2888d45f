package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/pkg/storage"
)

// maxUploadSize caps direct uploads at 10 MiB
const maxUploadSize = 10 << 20

// presignExpiry is how long a signed upload URL stays valid
const presignExpiry = 15 * time.Minute

// MediaHandler serves media upload endpoints backed by object storage
type MediaHandler struct {
	storage *storage.S3Client
}

// NewMediaHandler creates a new media handler. storageClient may be
// nil when storage is disabled; endpoints then return 404.
func NewMediaHandler(storageClient *storage.S3Client) *MediaHandler {
	return &MediaHandler{storage: storageClient}
}

// Upload handles POST /api/v1/media. The file lands in object storage
// and the response carries its public URL.
func (h *MediaHandler) Upload(c *gin.Context) {
	if h.storage == nil {
		common.ErrorResponse(c, 404, "media storage is disabled", common.ErrNotFound)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		common.ErrorResponse(c, 400, "file is required", err)
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		common.ErrorResponse(c, 400, "file too large", common.ErrInvalidInput)
		return
	}

	key := storage.GenerateKey("media", header.Filename)
	result, err := h.storage.Upload(c.Request.Context(), key, file,
		header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		common.ErrorResponse(c, 500, "upload failed", err)
		return
	}
	common.CreatedResponse(c, result)
}

// SignUpload handles POST /api/v1/media/sign. It returns a presigned
// PUT URL so large files go straight to object storage.
func (h *MediaHandler) SignUpload(c *gin.Context) {
	if h.storage == nil {
		common.ErrorResponse(c, 404, "media storage is disabled", common.ErrNotFound)
		return
	}

	var req struct {
		Filename    string `json:"filename" binding:"required"`
		ContentType string `json:"content_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	key := storage.GenerateKey("media", req.Filename)
	signed, err := h.storage.PresignUpload(c.Request.Context(), key, req.ContentType, presignExpiry)
	if err != nil {
		common.ErrorResponse(c, 500, "sign upload failed", err)
		return
	}
	common.SuccessResponse(c, signed, nil)
}

// SignDownload handles GET /api/v1/media/url?key=. It returns a
// presigned GET URL for objects in private buckets, where the public
// CDN URL does not resolve.
func (h *MediaHandler) SignDownload(c *gin.Context) {
	if h.storage == nil {
		common.ErrorResponse(c, 404, "media storage is disabled", common.ErrNotFound)
		return
	}

	key := c.Query("key")
	if key == "" {
		common.ErrorResponse(c, 400, "key is required", common.ErrInvalidInput)
		return
	}

	url, err := h.storage.GetPresignedURL(c.Request.Context(), key, presignExpiry)
	if err != nil {
		common.ErrorResponse(c, 500, "sign download failed", err)
		return
	}
	common.SuccessResponse(c, gin.H{
		"url":        url,
		"expires_in": int64(presignExpiry.Seconds()),
	}, nil)
}
