package auth

import "errors"

// Tokens are issued by the hosted auth provider; this service only
// verifies them at the boundary.
var (
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
