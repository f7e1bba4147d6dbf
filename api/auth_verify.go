package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storeit/appwrite"
	"storeit/model"
)

// Sessions outlive the OTP; the cookie is refreshed on every verify
const sessionCookieMaxAge = 60 * 60 * 24 * 30

type verifyBody struct {
	AccountID string `json:"accountId"`
	Password  string `json:"password"`
}

// AuthVerify exchanges an OTP transaction id and the emailed passcode
// for a session, and sets the session cookie that is the whole
// authentication proof from here on.
func (a *API) AuthVerify(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data verifyBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.AccountID == "" || data.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Account id and passcode can't be empty",
			"requestID": requestID,
		})
		return
	}

	session, err := a.Admin.CreateSession(c.Request.Context(), data.AccountID, data.Password)
	if err != nil {
		var apiErr *appwrite.Error
		if errors.As(err, &apiErr) && apiErr.Code < http.StatusInternalServerError {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     model.ErrInvalidOTP.Error(),
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(a.Cfg.CookieName, session.Secret, sessionCookieMaxAge, "/", "", a.Cfg.CookieSecure, true)

	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.ID,
	})
}
