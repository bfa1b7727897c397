package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"homeserve/services/storage"

	"github.com/gin-gonic/gin"
)

// StorageHandler handles general file storage endpoints (profile images and
// other media).
type StorageHandler struct {
	StorageSvc storage.StorageService
}

// allowedBuckets defines permitted buckets for general file uploads.
var allowedBuckets = map[string]bool{
	"images":    true,
	"documents": true,
}

// UploadFileHandler handles POST /api/storage/:bucket.
func (h *StorageHandler) UploadFileHandler(c *gin.Context) {
	bucket := c.Param("bucket")
	if !allowedBuckets[bucket] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bucket; allowed values are 'images' and 'documents'"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "detail": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	publicID, err := h.StorageSvc.UploadFile(c, tempFilePath, bucket)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file", "detail": err.Error()})
		return
	}

	downloadURL, err := h.StorageSvc.GetDownloadURL(c, "image", publicID, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to construct download URL", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "file uploaded successfully",
		"publicId":    publicID,
		"downloadURL": downloadURL,
	})
}

// GetSecureDownloadURLHandler handles GET /api/storage/:bucket/:publicId/url.
// It issues a time-limited signed URL; used for verification documents.
func (h *StorageHandler) GetSecureDownloadURLHandler(c *gin.Context) {
	bucket := c.Param("bucket")
	if !allowedBuckets[bucket] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bucket"})
		return
	}

	publicID := c.Param("publicId")
	url, err := h.StorageSvc.GetSecureDownloadURL(c, "image", publicID, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to construct download URL", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadURL": url})
}

// DeleteFileHandler handles DELETE /api/storage/:bucket/:publicId.
func (h *StorageHandler) DeleteFileHandler(c *gin.Context) {
	if err := h.StorageSvc.DeleteFile(c, c.Param("publicId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete file", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}
