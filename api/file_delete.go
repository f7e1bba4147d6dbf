package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storeit/appwrite"
)

// FileDelete removes the document first and the blob only once the
// document is gone, the inverse of upload's ordering. A dangling
// document is tolerated; an unreferenced blob is not, so the blob is
// never deleted ahead of its document.
func (a *API) FileDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	fileID := c.Param("id")
	bucketFileID := c.Query("bucketFileId")
	if bucketFileID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "bucketFileId is missing",
			"requestID": requestID,
		})
		return
	}

	err := a.Admin.DeleteDocument(c.Request.Context(), a.Cfg.Appwrite.DatabaseID, a.Cfg.Appwrite.FilesCollectionID, fileID)
	if err != nil {
		if appwrite.IsNotFound(err) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "File not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete file document", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.Store.Delete(c.Request.Context(), bucketFileID); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete blob", zap.Error(err),
			zap.String("bucketFileId", bucketFileID), zap.String("requestID", requestID))
		return
	}

	a.revalidate(c, c.Query("path"))
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}
