package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storeit/appwrite"
	"storeit/model"
	"storeit/validators"
)

type shareBody struct {
	Emails []string `json:"emails"`
	Path   string   `json:"path"`
}

// FileShare replaces a file's access list wholesale with the given
// emails. An empty list revokes all shares.
func (a *API) FileShare(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	fileID := c.Param("id")

	var data shareBody
	if err := c.BindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	for _, email := range data.Emails {
		if err := validators.EmailValidator(email); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}
	}

	if data.Emails == nil {
		data.Emails = []string{}
	}

	raw, err := a.Admin.UpdateDocument(c.Request.Context(), a.Cfg.Appwrite.DatabaseID, a.Cfg.Appwrite.FilesCollectionID, fileID, map[string]any{
		"users": data.Emails,
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

		zap.L().Error("Failed to update file access list", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var updated model.File
	if err := json.Unmarshal(raw, &updated); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to decode shared file document", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	a.revalidate(c, data.Path)
	c.JSON(http.StatusOK, updated)
}
