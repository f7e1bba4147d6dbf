package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storeit/model"
	"storeit/validators"
)

type otpBody struct {
	Email string `json:"email"`
}

// AuthOTP issues a one-time passcode to the given address and returns
// the transaction's account id.
func (a *API) AuthOTP(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data otpBody
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

// sendEmailOTP starts an OTP transaction for email. The returned id is
// the value later exchanged together with the passcode for a session.
func (a *API) sendEmailOTP(ctx context.Context, email string) (string, error) {
	token, err := a.Admin.CreateEmailToken(ctx, newID(), email)
	if err != nil {
		return "", fmt.Errorf("%w, %v", model.ErrOTPIssuance, err)
	}

	return token.UserID, nil
}
