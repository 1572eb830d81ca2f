package httpx

import (
	"fmt"
	"net/http"

	"github.com/tansive/archsrv/internal/common/apperrors"
)

// Error is an HTTP error response with a status code, kind and description.
type Error struct {
	Description string `json:"description"`
	StatusCode  int    `json:"http_status_code"`
	Kind        string `json:"kind"`
}

type errorRsp struct {
	Result int    `json:"result"`
	Kind   string `json:"kind"`
	Error  string `json:"error"`
}

// Failure is the result code in error responses.
const Failure int = 0

// Send writes the error response. A nil writer is ignored.
func (e *Error) Send(w http.ResponseWriter) {
	if w == nil {
		return
	}
	kind := e.Kind
	if kind == "" {
		kind = apperrors.KindInternal
	}
	rspJson, err := json.Marshal(&errorRsp{
		Result: Failure,
		Kind:   kind,
		Error:  e.Description,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Unable to parse error"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	w.Write(rspJson)
}

func (e *Error) Error() string {
	return e.Description
}

// SendError writes err as an error response. *Error values are sent as is, apperrors.Error
// values keep their status code and kind, anything else becomes a 500.
func SendError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	switch e := err.(type) {
	case *Error:
		e.Send(w)
	case apperrors.Error:
		statusCode := e.StatusCode()
		if statusCode == 0 {
			statusCode = http.StatusInternalServerError
		}
		(&Error{
			StatusCode:  statusCode,
			Kind:        e.Kind(),
			Description: e.ErrorAll(),
		}).Send(w)
	default:
		ErrApplicationError(err.Error()).Send(w)
	}
}

// ErrReqMethodNotSupported returns an error for unsupported HTTP methods.
func ErrReqMethodNotSupported() *Error {
	return &Error{
		Description: "request method not supported",
		StatusCode:  http.StatusMethodNotAllowed,
		Kind:        apperrors.KindInvalidParameter,
	}
}

// ErrUnableToParseReqData returns a deserialization error for an unparseable request body.
func ErrUnableToParseReqData(detail ...string) *Error {
	s := "unable to parse request data"
	if len(detail) > 0 && detail[0] != "" {
		s = s + ": " + detail[0]
	}
	return &Error{
		Description: s,
		StatusCode:  http.StatusBadRequest,
		Kind:        apperrors.KindDeserialization,
	}
}

// ErrUnableToReadRequest returns an error when the request body cannot be read.
func ErrUnableToReadRequest() *Error {
	return &Error{
		Description: "unable to read request data",
		StatusCode:  http.StatusBadRequest,
		Kind:        apperrors.KindDeserialization,
	}
}

// ErrInvalidParameter returns an error for a missing or malformed request parameter.
func ErrInvalidParameter(str ...string) *Error {
	s := "invalid request parameter"
	if len(str) > 0 {
		s = str[0]
	}
	return &Error{
		Description: s,
		StatusCode:  http.StatusBadRequest,
		Kind:        apperrors.KindInvalidParameter,
	}
}

// ErrApplicationError returns an error for application-level failures.
func ErrApplicationError(err ...string) *Error {
	s := "unable to process request"
	if len(err) > 0 {
		s = err[0]
	}
	return &Error{
		Description: s,
		StatusCode:  http.StatusInternalServerError,
		Kind:        apperrors.KindInternal,
	}
}

// ErrRequestTooLarge returns an error when the request body exceeds the size limit.
func ErrRequestTooLarge(limit int64) *Error {
	return &Error{
		Description: fmt.Sprintf("request body too large (limit: %d bytes)", limit),
		StatusCode:  http.StatusRequestEntityTooLarge,
		Kind:        apperrors.KindRequestTooLarge,
	}
}
