package candidate

import "errors"

var (
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrInvalidStatus     = errors.New("invalid candidate status")
)
