package model

import "errors"

// Error kinds the actions report. The messages double as the wire codes
// in error responses, so callers branch with errors.Is on the server
// side and on the code string at the HTTP edge, never on prose.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUserNotFound    = errors.New("user_not_found")
	ErrOTPIssuance     = errors.New("otp_issuance_failed")
	ErrInvalidOTP      = errors.New("invalid_otp")
	ErrDocumentWrite   = errors.New("document_write_failed")
	ErrBlobWrite       = errors.New("blob_write_failed")
)
