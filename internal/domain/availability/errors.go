package availability

import "errors"

var (
	ErrSettingsNotFound = errors.New("availability settings not found")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidRange     = errors.New("date range is invalid")
)
