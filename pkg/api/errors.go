package api

import (
	"errors"
	"net/http"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/harness"
	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/units"
)

var (
	ErrInvalidJSON  = errors.New("api: request body is not valid JSON")
	ErrBodyTooLarge = errors.New("api: request body too large")
	ErrEvalDisabled = errors.New("api: eval is disabled")
	ErrMissingCode  = errors.New("api: source is required")
)

// Error codes of the JSON error envelope.
const (
	CodeInvalidJSON    = "invalid_json"
	CodeBodyTooLarge   = "body_too_large"
	CodeUnknownUnit    = "unknown_unit"
	CodeLoadError      = "load_error"
	CodeExecutionError = "execution_error"
	CodeEvalDisabled   = "eval_disabled"
	CodeInternal       = "internal_error"
)

// classify maps an error to its status code and envelope code.
func classify(err error) (int, string) {
	var (
		le *harness.LoadError
		ee *harness.ExecutionError
	)
	switch {
	case errors.Is(err, ErrInvalidJSON), errors.Is(err, ErrMissingCode):
		return http.StatusBadRequest, CodeInvalidJSON
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, CodeBodyTooLarge
	case errors.Is(err, units.ErrUnknownUnit):
		return http.StatusNotFound, CodeUnknownUnit
	case errors.Is(err, ErrEvalDisabled):
		return http.StatusForbidden, CodeEvalDisabled
	case errors.As(err, &le):
		return http.StatusUnprocessableEntity, CodeLoadError
	case errors.As(err, &ee):
		return http.StatusInternalServerError, CodeExecutionError
	}
	return http.StatusInternalServerError, CodeInternal
}
