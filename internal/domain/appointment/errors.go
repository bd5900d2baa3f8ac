package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNotLapsed           = errors.New("appointment is not in lapsed status")
	ErrInvalidResolution   = errors.New("invalid resolution value")
	ErrMissingNewDate      = errors.New("new_date is required for a reschedule")
	ErrSlotConflict        = errors.New("the requested slot is no longer available")
	ErrSlotUnavailable     = errors.New("the requested time is not a bookable slot")
)
