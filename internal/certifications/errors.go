package certifications

import "errors"

var (
	ErrNotFound       = errors.New("certification not found")
	ErrParentNotFound = errors.New("parent resume not found")
)
