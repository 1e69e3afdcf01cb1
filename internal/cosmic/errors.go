package cosmic

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a non-2xx answer from the bucket API.
type StatusError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("cosmic: status %d", e.Status)
	}
	return fmt.Sprintf("cosmic: status %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err carries the bucket's 404 signal. Every other
// status, and every transport or decoding failure, is a generic failure.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}
