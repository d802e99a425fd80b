package post

import "fmt"

// ValidationError is returned before any write happens.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required attribute: %s", e.Field)
}
