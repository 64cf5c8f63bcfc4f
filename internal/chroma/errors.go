package chroma

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	chhttp "github.com/chroma-core/chroma/clients/go/pkg/commons/http"
)

// APIError is a non-2xx response from Chroma. Chroma reports failures as
// {"error": "NotFoundError", "message": "Tenant x not found"}.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return fmt.Sprintf("chroma returned status %d", e.Status)
}

// IsNotFound reports whether err is a 404 from Chroma.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// translate unwraps chroma-go's HTTP error chain into an *APIError so the
// server message reaches the user verbatim. Transport failures, which carry
// no status, are returned unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var chErr *chhttp.ChromaError
	if !errors.As(err, &chErr) || chErr.ErrorCode == 0 {
		return err
	}
	apiErr := &APIError{Status: chErr.ErrorCode}
	if chErr.ErrorID != "unknown" {
		apiErr.Code = chErr.ErrorID
	}
	if msg := strings.TrimSpace(chErr.Message); msg != "unknown" {
		apiErr.Message = msg
	}
	return apiErr
}
