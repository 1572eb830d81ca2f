package architecture

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tansive/archsrv/internal/common/httpx"
)

type handlerParam struct {
	Method  string
	Path    string
	Handler httpx.RequestHandler
}

// Paths served by the architecture handlers.
var Paths = []string{"/init", "/create", "/update", "/delete", "/architectures"}

func (h *Handlers) handlers() []handlerParam {
	return []handlerParam{
		{
			Method:  http.MethodGet,
			Path:    "/init",
			Handler: h.initArchitectures,
		},
		{
			Method:  http.MethodPost,
			Path:    "/create",
			Handler: h.createArchitecture,
		},
		{
			Method:  http.MethodPost,
			Path:    "/update",
			Handler: h.updateArchitecture,
		},
		{
			Method:  http.MethodGet,
			Path:    "/architectures",
			Handler: h.listArchitectures,
		},
		{
			Method:  http.MethodGet,
			Path:    "/delete",
			Handler: h.deleteArchitecture,
		},
	}
}

// Router registers the architecture handlers on r.
func Router(r chi.Router, h *Handlers) {
	for _, handler := range h.handlers() {
		r.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
}
