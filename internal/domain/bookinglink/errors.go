package bookinglink

import "errors"

var (
	ErrLinkNotFound     = errors.New("booking link not found")
	ErrLinkInvalid      = errors.New("booking link is not recognized")
	ErrLinkExpired      = errors.New("booking link has expired")
	ErrLinkUsed         = errors.New("booking link has already been used")
	ErrLinkRevoked      = errors.New("booking link has been revoked")
	ErrCannotRevokeUsed = errors.New("cannot revoke a link that has already been used")
)
