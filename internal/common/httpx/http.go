// Package httpx provides HTTP request/response handling utilities: JSON request decoding,
// handler wrapping with uniform error responses, and JSON responses.
package httpx

import (
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// GetRequestData reads the request body, bounded by limit bytes when limit is positive, and
// decodes it as JSON into data. Only POST and PUT are accepted.
func GetRequestData(r *http.Request, data any, limit int64) error {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		return ErrReqMethodNotSupported()
	}
	if r.Body == nil || r.Body == http.NoBody {
		log.Ctx(r.Context()).Debug().Msg("empty request body")
		return ErrUnableToParseReqData("request body is empty")
	}
	var body io.Reader = r.Body
	if limit > 0 {
		body = http.MaxBytesReader(nil, r.Body, limit)
	}
	b, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrRequestTooLarge(tooLarge.Limit)
		}
		return ErrUnableToReadRequest()
	}
	if len(b) == 0 {
		return ErrUnableToParseReqData("request body is empty")
	}
	if err := json.Unmarshal(b, data); err != nil {
		log.Ctx(r.Context()).Debug().Err(err).Msg("unable to decode request body")
		return ErrUnableToParseReqData(err.Error())
	}
	return nil
}

// Response describes a successful handler result.
type Response struct {
	StatusCode  int
	Response    any
	ContentType string
}

// RequestHandler handles a request and returns either a response or an error.
type RequestHandler func(r *http.Request) (*Response, error)

// WrapHttpRsp adapts a RequestHandler to http.HandlerFunc. Errors are written as JSON error
// bodies; responses are written as JSON unless the content type is text/plain.
func WrapHttpRsp(handler RequestHandler) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rsp, err := handler(r)
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("request failed")
			SendError(w, err)
			return
		}
		if rsp == nil {
			ErrApplicationError().Send(w)
			return
		}
		if rsp.StatusCode == 0 {
			rsp.StatusCode = http.StatusOK
		}
		if rsp.ContentType == "" {
			rsp.ContentType = "application/json"
		}
		switch rsp.ContentType {
		case "application/json":
			SendJsonRsp(r.Context(), w, rsp.StatusCode, rsp.Response)
		case "text/plain":
			s, _ := rsp.Response.(string)
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(rsp.StatusCode)
			w.Write([]byte(s))
		default:
			ErrApplicationError("unsupported response type").Send(w)
		}
	})
}
