package appwrite

import (
	"context"
	"net/http"
	"time"
)

// Token is an OTP transaction. UserID doubles as the account identifier
// later exchanged together with the emailed passcode for a session.
type Token struct {
	ID     string `json:"$id"`
	UserID string `json:"userId"`
	Secret string `json:"secret"`
	Expire string `json:"expire"`
}

// Session is the opaque pair issued on successful OTP verification.
// Secret is the sole artifact of the security boundary.
type Session struct {
	ID       string `json:"$id"`
	UserID   string `json:"userId"`
	Secret   string `json:"secret"`
	Provider string `json:"provider"`
}

// Account is the BaaS-side account a session resolves to.
type Account struct {
	ID           string    `json:"$id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registration"`
}

// CreateEmailToken starts an OTP transaction: the BaaS emails a
// passcode to email and returns the transaction.
func (c *Client) CreateEmailToken(ctx context.Context, userID, email string) (*Token, error) {
	var t Token
	err := c.call(ctx, http.MethodPost, "/account/tokens/email", map[string]any{
		"userId": userID,
		"email":  email,
	}, &t)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateSession exchanges an OTP transaction id and its emailed
// passcode for a session.
func (c *Client) CreateSession(ctx context.Context, userID, secret string) (*Session, error) {
	var s Session
	err := c.call(ctx, http.MethodPost, "/account/sessions/token", map[string]any{
		"userId": userID,
		"secret": secret,
	}, &s)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// GetAccount resolves the client's session to its account. Only valid
// on session clients.
func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	var a Account
	if err := c.call(ctx, http.MethodGet, "/account", nil, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

// DeleteSession destroys the client's current session.
func (c *Client) DeleteSession(ctx context.Context) error {
	return c.call(ctx, http.MethodDelete, "/account/sessions/current", nil, nil)
}
