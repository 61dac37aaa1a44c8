package httputil

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/chartnote/pkg/errors"
)

// ErrorBody is the JSON body of an error response.
type ErrorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	// Problems lists the individual messages of an error list.
	Problems []string `json:"problems,omitempty"`
}

// WriteJSON writes v as an indented JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// WriteError writes err as an ErrorBody with the status of its code.
func WriteError(w http.ResponseWriter, err error) {
	body := ErrorBody{Code: errors.GetCode(err), Message: errors.UserMessage(err)}
	if body.Code == "" {
		body.Code = errors.ErrCodeInternal
	}
	var list errors.List
	if stderrors.As(err, &list) {
		for _, e := range list {
			body.Problems = append(body.Problems, errors.UserMessage(e))
		}
	}
	WriteJSON(w, StatusOf(body.Code), body)
}

// StatusOf maps an error code to an HTTP status.
func StatusOf(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidDocument, errors.ErrCodeInvalidAnnotation,
		errors.ErrCodeInvalidTheme, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeUnresolvedAnchor, errors.ErrCodeUnknownSeries, errors.ErrCodeUnknownAxis:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
