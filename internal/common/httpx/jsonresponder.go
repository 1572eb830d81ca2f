package httpx

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/tansive/archsrv/internal/common/logtrace"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SendJsonRsp writes msg as a JSON response. Strings and byte slices holding valid JSON are
// written verbatim; other strings and byte slices are encoded as JSON strings, and anything
// else is marshaled.
func SendJsonRsp(ctx context.Context, w http.ResponseWriter, statusCode int, msg any) {
	var msgJson []byte
	switch v := msg.(type) {
	case string:
		if b := []byte(v); json.Valid(b) {
			msgJson = b
		}
	case []byte:
		if json.Valid(v) {
			msgJson = v
		} else {
			msg = string(v)
		}
	}
	if msgJson == nil {
		var err error
		msgJson, err = json.Marshal(msg)
		if err != nil {
			log.Ctx(ctx).Err(err).Msg("unable to marshal json")
			ErrApplicationError("Id: " + logtrace.RequestIdFromContext(ctx)).Send(w)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(msgJson)
}
