package compensation

import "errors"

var (
	ErrNoActiveCompensation = errors.New("employee has no active compensation components")
	ErrComponentNotFound    = errors.New("compensation component not found")
)
