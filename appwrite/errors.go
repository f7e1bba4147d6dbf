package appwrite

import (
	"errors"
	"net/http"
)

// Error is the JSON error envelope Appwrite returns on failed calls.
type Error struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// IsNotFound reports whether err is an Appwrite 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}

// IsUnauthorized reports whether err is an Appwrite 401, i.e. a missing,
// expired or otherwise invalid session or credential.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusUnauthorized
}
