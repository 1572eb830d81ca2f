// Package db is the storage entry point for the service. A request obtains one pooled
// connection with ConnCtx, runs its operation through DB(ctx) and releases the connection
// with DB(ctx).Close.
package db

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/tansive/archsrv/internal/archsrv/config"
	"github.com/tansive/archsrv/internal/archsrv/db/dberror"
	"github.com/tansive/archsrv/internal/archsrv/db/dbmanager"
	"github.com/tansive/archsrv/internal/archsrv/db/models"
	"github.com/tansive/archsrv/internal/archsrv/db/sqlstore"
	"github.com/tansive/archsrv/internal/common/apperrors"
)

// ArchitectureManager handles the architectures table.
type ArchitectureManager interface {
	ResetArchitectures(ctx context.Context) apperrors.Error
	CreateArchitecture(ctx context.Context, a *models.Architecture) apperrors.Error
	UpdateArchitecture(ctx context.Context, a *models.Architecture) (int64, apperrors.Error)
	ListArchitectures(ctx context.Context) ([]*models.Architecture, apperrors.Error)
	DeleteArchitecture(ctx context.Context, archID int32) (int64, apperrors.Error)
}

// ConnectionManager returns the request's connection to the pool.
type ConnectionManager interface {
	Close(ctx context.Context)
}

// Database combines the managers bound to one connection.
type Database interface {
	ArchitectureManager
	ConnectionManager
}

// NewPool opens the connection pool for the configured database.
func NewPool(ctx context.Context, c *config.ConfigParam) (dbmanager.Pool, error) {
	target, err := c.Database()
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Str("driver", target.Driver).Str("database", target.Database).Msg("opening database pool")
	return dbmanager.NewPool(ctx, target.Driver, target.DSN)
}

// Conn checks out a connection from pool.
func Conn(ctx context.Context, pool dbmanager.Pool) (dbmanager.PooledConn, apperrors.Error) {
	if pool == nil {
		return nil, dberror.ErrConnection.Msg("database pool not initialized")
	}
	conn, err := pool.Conn(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("unable to get db connection")
		return nil, dberror.ErrConnection.Err(err)
	}
	return conn, nil
}

type ctxDbKeyType string

const ctxDbKey ctxDbKeyType = "ArchsrvDb"

// ConnCtx checks out a connection and stores it in the returned context.
func ConnCtx(ctx context.Context, pool dbmanager.Pool) (context.Context, error) {
	conn, err := Conn(ctx, pool)
	if err != nil {
		return nil, err
	}
	return context.WithValue(ctx, ctxDbKey, conn), nil
}

type archsrvDb struct {
	ArchitectureManager
	ConnectionManager
}

// DB returns the managers bound to the connection stored in ctx, or nil if there is none.
func DB(ctx context.Context) Database {
	if conn, ok := ctx.Value(ctxDbKey).(dbmanager.PooledConn); ok {
		return &archsrvDb{
			ArchitectureManager: sqlstore.NewArchitectureManager(conn),
			ConnectionManager:   sqlstore.NewConnectionManager(conn),
		}
	}
	log.Ctx(ctx).Error().Msg("unable to get db connection from context")
	return nil
}
