package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storeit/appwrite"
	"storeit/model"
)

type renameBody struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	Path      string `json:"path"`
}

// FileRename overwrites the display name as name.extension. It touches
// nothing else: content, detected category and the blob stay as they
// were.
func (a *API) FileRename(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	fileID := c.Param("id")

	var data renameBody
	if err := c.BindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	if strings.TrimSpace(data.Name) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No new name provided",
			"requestID": requestID,
		})
		return
	}

	name := data.Name
	if data.Extension != "" {
		name += "." + data.Extension
	}

	raw, err := a.Admin.UpdateDocument(c.Request.Context(), a.Cfg.Appwrite.DatabaseID, a.Cfg.Appwrite.FilesCollectionID, fileID, map[string]any{
		"name": name,
	})
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

		zap.L().Error("Failed to rename file document", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var updated model.File
	if err := json.Unmarshal(raw, &updated); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to decode renamed file document", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	a.revalidate(c, data.Path)
	c.JSON(http.StatusOK, updated)
}
