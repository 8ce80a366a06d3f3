package scorm

import "errors"

// Failure kinds. Every *ExtractError unwraps to exactly one of these.
var (
	ErrSizeExceeded      = errors.New("package size exceeded")
	ErrManifestMissing   = errors.New("manifest missing")
	ErrNoSCOs            = errors.New("no SCOs found")
	ErrEntryPointMissing = errors.New("entry point missing")
	ErrParse             = errors.New("parse failure")
)

// ExtractError is a failed extraction. Error returns the user-facing reason.
type ExtractError struct {
	Kind error
	Msg  string
	Err  error // underlying cause, set for ErrParse
}

func (e *ExtractError) Error() string {
	return e.Msg
}

func (e *ExtractError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, msg string) *ExtractError {
	return &ExtractError{Kind: kind, Msg: msg}
}

func parseFailure(err error) *ExtractError {
	return &ExtractError{
		Kind: ErrParse,
		Msg:  "Failed to parse SCORM package: " + err.Error(),
		Err:  err,
	}
}
