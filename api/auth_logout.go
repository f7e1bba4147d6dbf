package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storeit/appwrite"
)

// AuthLogout destroys the current session and clears the cookie. It
// redirects to the sign-in page no matter what: a failed session delete
// is logged, not surfaced, since the cookie is gone either way.
func (a *API) AuthLogout(c *gin.Context) {
	secret, _ := c.Cookie(a.Cfg.CookieName)

	if client, err := appwrite.NewSession(a.Cfg.Appwrite, secret); err == nil {
		if err := client.DeleteSession(c.Request.Context()); err != nil {
			zap.L().Warn("Failed to delete session", zap.Error(err))
		}
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(a.Cfg.CookieName, "", -1, "/", "", a.Cfg.CookieSecure, true)

	c.Redirect(http.StatusSeeOther, a.Cfg.SignInPath)
}
