package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// GenericMessage is shown when a failure carries no backend message.
const GenericMessage = "An error occurred"

// Error is a non-2xx backend response. Message is the body's "error" field,
// empty when the body did not carry one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API returned %d", e.Status)
}

// NotFound reports whether the backend answered 404.
func (e *Error) NotFound() bool {
	return e.Status == http.StatusNotFound
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil {
		apiErr.Message = body.Error
	}
	return apiErr
}

// Message returns the backend's error text for err, or fallback when err is a
// transport failure or the backend sent no message.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
