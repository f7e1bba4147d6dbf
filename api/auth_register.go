package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storeit/appwrite"
	"storeit/model"
	"storeit/validators"
)

type registerBody struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// AuthRegister creates an account: an OTP is issued either way, and a
// user document is only written when the email is new. The returned
// accountId is the OTP transaction's id, which later doubles as the
// value exchanged for a session.
func (a *API) AuthRegister(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.FullNameValidator(data.FullName); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	existing, err := a.userByEmail(c.Request.Context(), data.Email)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user by email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	accountID, err := a.sendEmailOTP(c.Request.Context(), data.Email)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     model.ErrOTPIssuance.Error(),
			"requestID": requestID,
		})

		zap.L().Error("Failed to send email OTP", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if existing == nil {
		_, err := a.Admin.CreateDocument(
			c.Request.Context(),
			a.Cfg.Appwrite.DatabaseID,
			a.Cfg.Appwrite.UsersCollectionID,
			newID(),
			map[string]any{
				"fullName":  data.FullName,
				"email":     data.Email,
				"avatar":    a.avatarURL(data.FullName),
				"accountId": accountID,
			},
		)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "internal_server_error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to create user document", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"accountId": accountID,
	})
}

// userByEmail returns the user document for email, or nil if the email
// is unregistered.
func (a *API) userByEmail(ctx context.Context, email string) (*model.User, error) {
	list, err := a.Admin.ListDocuments(ctx, a.Cfg.Appwrite.DatabaseID, a.Cfg.Appwrite.UsersCollectionID,
		appwrite.Equal("email", email),
	)
	if err != nil {
		return nil, err
	}

	if list.Total == 0 {
		return nil, nil
	}

	var user model.User
	if err := json.Unmarshal(list.Documents[0], &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// avatarURL derives the placeholder avatar shown until the user picks
// one. The BaaS renders initials from the name.
func (a *API) avatarURL(fullName string) string {
	return a.Cfg.Appwrite.Endpoint + "/avatars/initials?name=" + url.QueryEscape(fullName) +
		"&project=" + url.QueryEscape(a.Cfg.Appwrite.ProjectID)
}
