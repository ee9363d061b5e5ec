package service

import "errors"

// Kind classifies an operation failure. Exactly one layer — the HTTP
// handler — turns a Kind into a status code and response body.
type Kind int

const (
	// KindTechnical is any unclassified dependency fault. Rendered as a
	// generic message, never as the raw error.
	KindTechnical Kind = iota
	KindUnauthenticated
	KindNotFound
	KindForbidden
	KindConflict
)

// Messages surfaced to callers. Wording is part of the API contract; the
// original clients match on these strings.
const (
	msgNotLoggedIn     = "user not logged in"
	msgProjectNotFound = "project id not found"
	msgNotAdmin        = "user does not have administrative rights to project"
	msgEmailNotFound   = "we couldn't find a user with that email address"
	msgAlreadyAdmin    = "user is already an administrator for this project"
	msgRemovedNotAdmin = "removed user is not an administrator for this project"
	msgNoAccounts      = "no accounts with these ids exist"
	msgEmailTaken      = "an account with that email already exists"
	msgBadCredentials  = "invalid email or password"
	msgTechnical       = "technical error"
)

// Error is a classified operation failure with a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func fail(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func technical(cause error) *Error {
	return &Error{Kind: KindTechnical, Message: msgTechnical, cause: cause}
}

// Classify returns the *Error behind err, or wraps an unclassified fault
// as technical so no raw error ever reaches a caller.
func Classify(err error) *Error {
	var opErr *Error
	if errors.As(err, &opErr) {
		return opErr
	}
	return technical(err)
}
