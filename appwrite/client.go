// Package appwrite is a thin REST client for the Appwrite endpoints the
// app consumes: account tokens/sessions, document collections and their
// query DSL, and bucket storage.
package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"storeit/config"
)

// ErrNoSession is returned when a session client is requested without a
// session secret, i.e. the caller has no session cookie.
var ErrNoSession = errors.New("no session secret provided")

// Client talks to one Appwrite project. A client is either privileged
// (authorized by the secret key) or session-scoped (authorized by the
// secret from the caller's cookie), never both.
type Client struct {
	endpoint string
	project  string
	key      string
	session  string

	http *http.Client
}

// NewAdmin returns a client authorized by the project's secret key. It
// bypasses per-user permissions and is used for privileged writes:
// account creation, OTP issuance, file and document mutation.
func NewAdmin(cfg config.Appwrite) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		project:  cfg.ProjectID,
		key:      cfg.SecretKey,
		http:     http.DefaultClient,
	}
}

// NewSession returns a client scoped to the caller's session. Used for
// user-scoped reads so the BaaS enforces per-user permissions.
func NewSession(cfg config.Appwrite, sessionSecret string) (*Client, error) {
	if sessionSecret == "" {
		return nil, ErrNoSession
	}

	return &Client{
		endpoint: cfg.Endpoint,
		project:  cfg.ProjectID,
		session:  sessionSecret,
		http:     http.DefaultClient,
	}, nil
}

func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body, %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("X-Appwrite-Project", c.project)
	if c.key != "" {
		req.Header.Set("X-Appwrite-Key", c.key)
	}
	if c.session != "" {
		req.Header.Set("X-Appwrite-Session", c.session)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("appwrite call failed, %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read appwrite response, %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{Code: resp.StatusCode}
		// The body is a JSON error envelope on every documented failure.
		// If it isn't, keep the raw body as the message
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = string(data)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(data, out)
}

// upload sends a multipart request with a single file part. Uploads are
// single-shot buffer hand-offs, there is no chunking.
func (c *Client) upload(ctx context.Context, path, fileID, name string, data []byte, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("fileId", fileID); err != nil {
		return err
	}

	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, out)
}
