package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/xwikiorgci/application-wikiflavor/kit/platform/errors"
)

// PlatformErrorCodeHeader carries the platform error code of a failed response.
const PlatformErrorCodeHeader = "X-Platform-Error-Code"

// API provides a consistent means of serving and handling errors for http
// handlers.
type API struct {
	log *zap.Logger
}

// APIOptFn is a functional option for the API type.
type APIOptFn func(*API)

// WithLog sets the logger on the API.
func WithLog(log *zap.Logger) APIOptFn {
	return func(a *API) {
		a.log = log
	}
}

// NewAPI creates a new API type.
func NewAPI(opts ...APIOptFn) *API {
	api := &API{}
	for _, o := range opts {
		o(api)
	}
	return api
}

// DecodeJSON decodes a JSON body into v, normalizing decode failures to an
// EInvalid platform error.
func (a *API) DecodeJSON(r io.Reader, v interface{}) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return &errors.Error{
			Code: errors.EInvalid,
			Msg:  "failed to decode request body",
			Err:  err,
		}
	}
	return nil
}

// Respond writes v as JSON with the given status code.
func (a *API) Respond(w http.ResponseWriter, r *http.Request, code int, v interface{}) {
	if v == nil {
		w.WriteHeader(code)
		return
	}

	b, err := json.Marshal(v)
	if err != nil {
		a.Err(w, r, &errors.Error{
			Code: errors.EInternal,
			Msg:  "failed to encode response body",
			Err:  err,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write(b); err != nil && a.log != nil {
		a.log.Error("failed to write response body", zap.Error(err))
	}
}

// Err writes the error with the appropriate status code and platform error
// headers.
func (a *API) Err(w http.ResponseWriter, r *http.Request, err error) {
	ErrorHandler(0).HandleHTTPError(r.Context(), err, w)
}

// ErrorHandler is the error handler in the http package.
type ErrorHandler int

// HandleHTTPError encodes err with the appropriate status code and format,
// sets the X-Platform-Error-Code header on the response,
// and sets the response status to the corresponding status code.
func (h ErrorHandler) HandleHTTPError(ctx context.Context, err error, w http.ResponseWriter) {
	if err == nil {
		return
	}

	code := errors.ErrorCode(err)
	httpCode, ok := statusCodePlatformError[code]
	if !ok {
		httpCode = http.StatusBadRequest
	}
	w.Header().Set(PlatformErrorCodeHeader, code)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(httpCode)
	var e struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	e.Code = code
	if pe, ok := err.(*errors.Error); ok {
		e.Message = pe.Error()
	} else {
		e.Message = "An internal error has occurred"
	}
	b, _ := json.Marshal(e)
	_, _ = w.Write(b)
}

// statusCodePlatformError maps platform error codes to HTTP status codes.
var statusCodePlatformError = map[string]int{
	errors.EInternal:            http.StatusInternalServerError,
	errors.ENotImplemented:      http.StatusNotImplemented,
	errors.EInvalid:             http.StatusBadRequest,
	errors.EUnprocessableEntity: http.StatusUnprocessableEntity,
	errors.EConflict:            http.StatusUnprocessableEntity,
	errors.ENotFound:            http.StatusNotFound,
	errors.EUnavailable:         http.StatusServiceUnavailable,
	errors.EForbidden:           http.StatusForbidden,
	errors.EUnauthorized:        http.StatusUnauthorized,
	errors.EMethodNotAllowed:    http.StatusMethodNotAllowed,
	errors.ETooLarge:            http.StatusRequestEntityTooLarge,
}
