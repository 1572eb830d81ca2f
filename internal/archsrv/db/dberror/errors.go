package dberror

import (
	"errors"
	"net/http"

	"github.com/jackc/pgconn"
	"github.com/tansive/archsrv/internal/common/apperrors"
	"modernc.org/sqlite"
)

var (
	ErrDatabase            apperrors.Error = apperrors.New("db error").SetStatusCode(http.StatusInternalServerError).SetKind(apperrors.KindStorage)
	ErrConnection          apperrors.Error = ErrDatabase.New("unable to obtain database connection").SetKind(apperrors.KindConnection)
	ErrConstraintViolation apperrors.Error = ErrDatabase.New("value rejected by storage").SetStatusCode(http.StatusBadRequest).SetKind(apperrors.KindConstraintViolation).SetExpandError(true)
)

// sqliteConstraint is the SQLITE_CONSTRAINT primary result code.
const sqliteConstraint = 19

// Classify maps a driver error to the storage taxonomy. Values rejected by the engine
// (Postgres SQLSTATE classes 22 and 23, SQLite constraint failures) are client errors and
// carry the engine's reason; everything else is a storage failure whose driver detail is
// kept out of the response body.
func Classify(err error, msg string) apperrors.Error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 {
		switch pgErr.Code[:2] {
		case "22", "23":
			return ErrConstraintViolation.MsgErr(msg, errors.New(pgErr.Message))
		}
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code()&0xff == sqliteConstraint {
		return ErrConstraintViolation.MsgErr(msg, err)
	}
	return ErrDatabase.MsgErr(msg, err)
}
