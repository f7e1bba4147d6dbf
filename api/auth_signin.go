package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storeit/model"
	"storeit/validators"
)

type signInBody struct {
	Email string `json:"email"`
}

// AuthSignIn starts sign-in for a registered email. An unregistered
// email is answered with a success-shaped sentinel instead of an error,
// so callers can tell "no such user" apart from a transport failure.
func (a *API) AuthSignIn(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data signInBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
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

	user, err := a.userByEmail(c.Request.Context(), data.Email)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "internal_server_error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user by email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if user == nil {
		c.JSON(http.StatusOK, gin.H{
			"accountId": nil,
			"error":     model.ErrUserNotFound.Error(),
		})
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

	c.JSON(http.StatusOK, gin.H{
		"accountId": accountID,
	})
}
