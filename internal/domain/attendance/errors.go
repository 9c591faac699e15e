package attendance

import "errors"

// Attendance domain errors
var (
	ErrInvalidPunchType = errors.New("punch type must be one of check_in, break_start, break_end, check_out")
	ErrInvalidRecord    = errors.New("invalid attendance record")
	ErrPhotoRequired    = errors.New("punch photo is required")
)
