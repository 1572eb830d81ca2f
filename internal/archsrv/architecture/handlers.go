package architecture

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/tansive/archsrv/internal/archsrv/db"
	"github.com/tansive/archsrv/internal/archsrv/db/dbmanager"
	"github.com/tansive/archsrv/internal/common/httpx"
)

// Handlers serves the architecture operations against a connection pool.
type Handlers struct {
	pool        dbmanager.Pool
	maxBodySize int64
}

// NewHandlers returns handlers using pool. Request bodies are limited to maxBodySize bytes.
func NewHandlers(pool dbmanager.Pool, maxBodySize int64) *Handlers {
	return &Handlers{pool: pool, maxBodySize: maxBodySize}
}

func statusOK() *httpx.Response {
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   &statusRsp{Status: true},
	}
}

func (h *Handlers) initArchitectures(r *http.Request) (*httpx.Response, error) {
	ctx, err := db.ConnCtx(r.Context(), h.pool)
	if err != nil {
		return nil, err
	}
	defer db.DB(ctx).Close(ctx)

	if err := db.DB(ctx).ResetArchitectures(ctx); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Msg("architectures table reinitialized")
	return statusOK(), nil
}

func (h *Handlers) createArchitecture(r *http.Request) (*httpx.Response, error) {
	a, err := DecodeArchitecture(r, h.maxBodySize)
	if err != nil {
		return nil, err
	}

	ctx, err := db.ConnCtx(r.Context(), h.pool)
	if err != nil {
		return nil, err
	}
	defer db.DB(ctx).Close(ctx)

	if err := db.DB(ctx).CreateArchitecture(ctx, a.ToModel()); err != nil {
		return nil, err
	}
	return statusOK(), nil
}

func (h *Handlers) updateArchitecture(r *http.Request) (*httpx.Response, error) {
	a, err := DecodeArchitecture(r, h.maxBodySize)
	if err != nil {
		return nil, err
	}

	ctx, err := db.ConnCtx(r.Context(), h.pool)
	if err != nil {
		return nil, err
	}
	defer db.DB(ctx).Close(ctx)

	n, uerr := db.DB(ctx).UpdateArchitecture(ctx, a.ToModel())
	if uerr != nil {
		return nil, uerr
	}
	log.Ctx(ctx).Debug().Int32("arch_id", a.ArchID).Int64("rows", n).Msg("architecture updated")
	return statusOK(), nil
}

func (h *Handlers) listArchitectures(r *http.Request) (*httpx.Response, error) {
	ctx, err := db.ConnCtx(r.Context(), h.pool)
	if err != nil {
		return nil, err
	}
	defer db.DB(ctx).Close(ctx)

	rows, lerr := db.DB(ctx).ListArchitectures(ctx)
	if lerr != nil {
		return nil, lerr
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   FromModels(rows),
	}, nil
}

func (h *Handlers) deleteArchitecture(r *http.Request) (*httpx.Response, error) {
	archID, err := archIDFromQuery(r)
	if err != nil {
		return nil, err
	}

	ctx, err := db.ConnCtx(r.Context(), h.pool)
	if err != nil {
		return nil, err
	}
	defer db.DB(ctx).Close(ctx)

	n, derr := db.DB(ctx).DeleteArchitecture(ctx, archID)
	if derr != nil {
		return nil, derr
	}
	log.Ctx(ctx).Debug().Int32("arch_id", archID).Int64("rows", n).Msg("architecture deleted")
	return statusOK(), nil
}

// archIDFromQuery parses the id query parameter as a 32-bit arch_id.
func archIDFromQuery(r *http.Request) (int32, error) {
	values := r.URL.Query()
	if !values.Has("id") {
		return 0, httpx.ErrInvalidParameter("query parameter id is required")
	}
	id, err := strconv.ParseInt(values.Get("id"), 10, 32)
	if err != nil {
		return 0, httpx.ErrInvalidParameter("query parameter id must be a 32-bit integer")
	}
	return int32(id), nil
}
