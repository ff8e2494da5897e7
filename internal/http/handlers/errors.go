// Package handlers defines the HTTP-layer error codes used across the API.
//
// Codes are lowercase snake_case and stable: clients branch on them for
// programmatic error handling while the accompanying message stays free to
// change. Generic codes mirror common HTTP semantics; domain-specific ones
// cover cases status alone cannot convey (e.g. "busy" for a coalesced
// generation trigger).
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeBusy        = "busy"
	ErrCodeListFailed  = "list_failed"
	ErrCodeStatsFailed = "stats_failed"
)
