package stun

import (
	"slices"

	"golang.org/x/exp/maps"
)

// ErrorCode is a STUN error code, carried in the ERROR-CODE attribute
// as a class digit (3..6) plus a two-digit remainder.
type ErrorCode uint16

const (
	CodeTryAlternate          ErrorCode = 300
	CodeBadRequest            ErrorCode = 400
	CodeUnauthorized          ErrorCode = 401
	CodeUnknownAttribute      ErrorCode = 420
	CodeStaleCredentials      ErrorCode = 430
	CodeIntegrityCheckFailure ErrorCode = 431
	CodeMissingUsername       ErrorCode = 432
	CodeUseTLS                ErrorCode = 433
	CodeMissingRealm          ErrorCode = 434
	CodeMissingNonce          ErrorCode = 435
	CodeUnknownUsername       ErrorCode = 436
	CodeStaleNonce            ErrorCode = 438
	CodeRoleConflict          ErrorCode = 487
	CodeServerError           ErrorCode = 500
	CodeGlobalFailure         ErrorCode = 600
)

var reasons = map[ErrorCode]string{
	CodeTryAlternate:          "Try alternate server",
	CodeBadRequest:            "Bad request",
	CodeUnauthorized:          "Authorization required",
	CodeUnknownAttribute:      "Unknown attribute",
	CodeStaleCredentials:      "Authentication expired",
	CodeIntegrityCheckFailure: "Incorrect username/password",
	CodeMissingUsername:       "Username required",
	CodeUseTLS:                "Secure connection required",
	CodeMissingRealm:          "Authentication domain required",
	CodeMissingNonce:          "Authentication token missing",
	CodeUnknownUsername:       "Unknown user name",
	CodeStaleNonce:            "Authentication token expired",
	CodeRoleConflict:          "Role conflict",
	CodeServerError:           "Temporary server error",
	CodeGlobalFailure:         "Unrecoverable failure",
}

// Reason returns the canonical reason phrase for c, or "Unknown
// error" for codes outside the catalog.
func (c ErrorCode) Reason() string {
	if r, ok := reasons[c]; ok {
		return r
	}
	return "Unknown error"
}

// KnownCodes returns the catalogued error codes in ascending order.
func KnownCodes() []ErrorCode {
	codes := maps.Keys(reasons)
	slices.Sort(codes)
	return codes
}
