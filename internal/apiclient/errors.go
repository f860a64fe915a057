package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized coincide (errors.Is) con cualquier StatusError 401.
var ErrUnauthorized = errors.New("unauthorized")

// StatusError representa una respuesta no 2xx del backend.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api http error: %s %s status=%d", e.Method, e.Path, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// StatusCode devuelve el status HTTP de err, o 0 si no hubo respuesta.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
