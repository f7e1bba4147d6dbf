package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storeit/model"
	"storeit/util"
)

// FileUpload stores a file as two writes: the blob first, then the
// document referencing it. A failed document write deletes the
// just-written blob so a listing never references an orphaned blob.
func (a *API) FileUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("currentUser").(*model.User)

	if !strings.HasPrefix(c.Request.Header.Get("Content-Type"), "multipart/form-data") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to parse multipart form", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	fh := files[0]
	path := c.PostForm("path")

	f, err := fh.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open uploaded file", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to read uploaded file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	obj, err := a.Store.Put(c.Request.Context(), newID(), fh.Filename, data)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     model.ErrBlobWrite.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to upload blob", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	fileType, extension := util.GetFileType(obj.Name)

	raw, err := a.Admin.CreateDocument(
		c.Request.Context(),
		a.Cfg.Appwrite.DatabaseID,
		a.Cfg.Appwrite.FilesCollectionID,
		newID(),
		map[string]any{
			"type":         fileType,
			"name":         obj.Name,
			"url":          a.Store.FileURL(obj.ID),
			"extension":    extension,
			"size":         obj.Size,
			"owner":        user.ID,
			"accountId":    user.AccountID,
			"users":        []string{},
			"bucketFileId": obj.ID,
		},
	)
	if err != nil {
		// Compensating delete: the blob must not outlive the failed
		// document write. Best effort, not retried
		if delErr := a.Store.Delete(context.WithoutCancel(c.Request.Context()), obj.ID); delErr != nil {
			zap.L().Error("Failed to clean up blob after failed document write",
				zap.Error(delErr), zap.String("bucketFileId", obj.ID))
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     model.ErrDocumentWrite.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to create file document", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var created model.File
	if err := json.Unmarshal(raw, &created); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to decode created file document", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	a.revalidate(c, path)
	c.JSON(http.StatusOK, created)
}
