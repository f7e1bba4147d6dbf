package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storeit/appwrite"
	"storeit/config"
	"storeit/model"
)

// ResolveUser turns a session secret into the matching user document.
// It returns (nil, nil) when the secret is empty, doesn't resolve to an
// account, or no user document carries the account id. That nil user is
// the canonical "not logged in" signal; errors are reserved for
// transport failures.
func ResolveUser(ctx context.Context, cfg *config.Config, sessionSecret string) (*model.User, error) {
	client, err := appwrite.NewSession(cfg.Appwrite, sessionSecret)
	if err != nil {
		return nil, nil
	}

	account, err := client.GetAccount(ctx)
	if err != nil {
		if appwrite.IsUnauthorized(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve session account, %w", err)
	}

	list, err := client.ListDocuments(ctx, cfg.Appwrite.DatabaseID, cfg.Appwrite.UsersCollectionID,
		appwrite.Equal("accountId", account.ID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user document, %w", err)
	}

	if list.Total == 0 {
		return nil, nil
	}

	var user model.User
	if err := json.Unmarshal(list.Documents[0], &user); err != nil {
		return nil, fmt.Errorf("failed to decode user document, %w", err)
	}

	return &user, nil
}

// NewSessionGate guards protected routes. Anything without a resolvable
// user is sent to the sign-in page before any protected handler runs.
// Resolution failures are treated the same as a missing user: logged,
// then redirected, never surfaced.
func NewSessionGate(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret, _ := c.Cookie(cfg.CookieName)

		user, err := ResolveUser(c.Request.Context(), cfg, secret)
		if err != nil {
			zap.L().Warn("Failed to resolve current user", zap.Error(err))
		}

		if user == nil {
			c.Redirect(http.StatusSeeOther, cfg.SignInPath)
			c.Abort()
			return
		}

		c.Set("currentUser", user)
		c.Next()
	}
}
