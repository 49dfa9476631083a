package education

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrParentNotFound = errors.New("resume not found")
)
