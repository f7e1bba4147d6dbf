package api

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storeit/appwrite"
	"storeit/model"
)

// Sortable attributes, keyed by their wire name. Timestamps are system
// fields on the BaaS side, hence the $ prefix
var sortFields = map[string]string{
	"createdAt": "$createdAt",
	"updatedAt": "$updatedAt",
	"name":      "name",
	"size":      "size",
}

// FileList returns the files the current user owns or has been granted
// access to, optionally narrowed by category and name and bounded by a
// sort/limit pair.
func (a *API) FileList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("currentUser").(*model.User)

	queries := []appwrite.Query{
		appwrite.Or(
			appwrite.Equal("owner", user.ID),
			appwrite.Contains("users", user.Email),
		),
	}

	if typesParam := c.Query("types"); typesParam != "" {
		types := make([]any, 0, 4)
		for _, t := range strings.Split(typesParam, ",") {
			if !slices.Contains(model.FileTypes, model.FileType(t)) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error":     "Invalid file type " + t,
					"requestID": requestID,
				})
				return
			}
			types = append(types, t)
		}
		queries = append(queries, appwrite.Equal("type", types...))
	}

	if search := c.Query("search"); search != "" {
		queries = append(queries, appwrite.Contains("name", search))
	}

	sortQuery, ok := parseSort(c.DefaultQuery("sort", "createdAt-desc"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid sorting option",
			"requestID": requestID,
		})
		return
	}
	queries = append(queries, sortQuery)

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Limit must be a positive integer",
				"requestID": requestID,
			})
			return
		}
		queries = append(queries, appwrite.Limit(limit))
	}

	// User-scoped read: the session client keeps the BaaS enforcing
	// per-user permissions
	secret, _ := c.Cookie(a.Cfg.CookieName)
	client, err := appwrite.NewSession(a.Cfg.Appwrite, secret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     model.ErrUnauthenticated.Error(),
			"requestID": requestID,
		})
		return
	}

	list, err := client.ListDocuments(c.Request.Context(), a.Cfg.Appwrite.DatabaseID, a.Cfg.Appwrite.FilesCollectionID, queries...)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list file documents", zap.Error(err), zap.String("requestID", requestID))
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

	c.JSON(http.StatusOK, gin.H{
		"total": list.Total,
		"files": files,
	})
}

// parseSort turns a "field-direction" pair into an order query.
func parseSort(s string) (appwrite.Query, bool) {
	field, direction, found := strings.Cut(s, "-")
	if !found {
		return appwrite.Query{}, false
	}

	attr, ok := sortFields[field]
	if !ok {
		return appwrite.Query{}, false
	}

	switch direction {
	case "asc":
		return appwrite.OrderAsc(attr), true
	case "desc":
		return appwrite.OrderDesc(attr), true
	default:
		return appwrite.Query{}, false
	}
}
