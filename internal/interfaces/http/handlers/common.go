// Package handlers implements the HTTP handlers of the CineMood API.
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/turtacn/CineMood/pkg/errors"
)

// DefaultMaxBodySize bounds request bodies when the handler is not told otherwise.
const DefaultMaxBodySize int64 = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// writeError maps err to a status through its error code.  Errors that are
// not AppErrors, and server-side AppErrors, are masked.
func writeError(w http.ResponseWriter, err error) {
	var ae *errors.AppError
	if !stderrors.As(err, &ae) {
		ae = errors.Internal(errors.DefaultMessageForCode(errors.CodeInternal))
	}
	status := errors.HTTPStatusForCode(ae.Code)
	resp := ErrorResponse{Code: ae.Code.String(), Message: ae.Message}
	if status < http.StatusInternalServerError {
		resp.Detail = ae.Detail
	}
	writeJSON(w, status, resp)
}

// ─────────────────────────────────────────────────────────────────────────────
// Request decoding
// ─────────────────────────────────────────────────────────────────────────────

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// getValidator returns the shared validator, reporting fields by their JSON
// names.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

var errEmptyBody = stderrors.New("empty body")

// decodeJSON reads a bounded JSON body into dst.  An empty body yields
// errEmptyBody so callers can decide whether that is acceptable.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst interface{}) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case stderrors.Is(err, io.EOF):
			return errEmptyBody
		case stderrors.As(err, &tooLarge):
			return errors.InvalidParam("request body too large").
				WithDetail(fmt.Sprintf("limit is %d bytes", tooLarge.Limit))
		default:
			return errors.InvalidParam("malformed JSON body").WithDetail(err.Error())
		}
	}
	if dec.More() {
		return errors.InvalidParam("malformed JSON body").WithDetail("unexpected data after JSON value")
	}
	return nil
}

// validateStruct runs struct-tag validation and folds failures into one
// validation AppError.
func validateStruct(s interface{}) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.New(errors.ErrCodeValidation, "validation failed").WithDetail(err.Error())
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return errors.New(errors.ErrCodeValidation, "validation failed").WithDetail(strings.Join(msgs, "; "))
}

//Personal.AI order the ending
