package skills

import "errors"

var (
	ErrNotFound       = errors.New("skill not found")
	ErrParentNotFound = errors.New("parent resume not found")
)
