package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storeit/appwrite"
	"storeit/model"
)

// A user can't realistically own more documents than this before
// hitting the 2 GiB quota
const usageListLimit = 5000

// Usage folds the current user's owned files into per-category size
// totals against the fixed capacity. Files shared with the user don't
// count toward their quota, only ownership does.
func (a *API) Usage(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("currentUser").(*model.User)

	secret, _ := c.Cookie(a.Cfg.CookieName)
	client, err := appwrite.NewSession(a.Cfg.Appwrite, secret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     model.ErrUnauthenticated.Error(),
			"requestID": requestID,
		})
		return
	}

	list, err := client.ListDocuments(c.Request.Context(), a.Cfg.Appwrite.DatabaseID, a.Cfg.Appwrite.FilesCollectionID,
		appwrite.Equal("owner", user.ID),
		appwrite.Limit(usageListLimit),
	)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list owned files", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	files := make([]model.File, 0, len(list.Documents))
	for _, doc := range list.Documents {
		var f model.File
		if err := json.Unmarshal(doc, &f); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "internal_server_error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to decode file document", zap.Error(err), zap.String("requestID", requestID))
			return
		}
		files = append(files, f)
	}

	c.JSON(http.StatusOK, model.BuildUsageSummary(files, a.Cfg.Capacity))
}
