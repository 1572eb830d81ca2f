package dbmanager

import (
	"context"
	"database/sql"
	"sync/atomic"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

type sqlPool struct {
	driver       string
	connRequests uint64
	connReturns  uint64
	db           *sql.DB
}

type sqlConn struct {
	conn   *sql.Conn
	pool   *sqlPool
	closed atomic.Bool
}

// NewPool opens a pool for the given database/sql driver and DSN, verifies connectivity and
// warms MinConns connections so they sit idle before the first request arrives.
func NewPool(ctx context.Context, driver, dsn string) (Pool, error) {
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("driver", driver).Msg("failed to open db")
		return nil, errors.Wrap(err, "failed to open database connection")
	}

	sqlDB.SetMaxOpenConns(MaxConns)
	sqlDB.SetMaxIdleConns(MinConns)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("driver", driver).Msg("failed to ping db")
		sqlDB.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	p := &sqlPool{
		driver: driver,
		db:     sqlDB,
	}
	if err := p.warm(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	log.Ctx(ctx).Info().
		Str("driver", driver).
		Int("open_conns", p.OpenConns()).
		Int("max_conns", MaxConns).
		Msg("database pool ready")
	return p, nil
}

// warm opens MinConns connections at once and releases them into the idle set.
func (p *sqlPool) warm(ctx context.Context) error {
	conns := make([]*sql.Conn, 0, MinConns)
	defer func() {
		for _, c := range conns {
			c.Close()
		}
	}()
	for i := 0; i < MinConns; i++ {
		c, err := p.db.Conn(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to warm connection pool")
		}
		conns = append(conns, c)
	}
	return nil
}

// Conn checks out a connection from the pool.
func (p *sqlPool) Conn(ctx context.Context) (PooledConn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to obtain connection")
		return nil, errors.Wrap(err, "failed to obtain database connection")
	}
	atomic.AddUint64(&p.connRequests, 1)
	return &sqlConn{conn: conn, pool: p}, nil
}

func (p *sqlPool) Stats() (requests, returns uint64) {
	return atomic.LoadUint64(&p.connRequests), atomic.LoadUint64(&p.connReturns)
}

func (p *sqlPool) OpenConns() int {
	return p.db.Stats().OpenConnections
}

func (p *sqlPool) Driver() string {
	return p.driver
}

func (p *sqlPool) Close() error {
	return p.db.Close()
}

func (c *sqlConn) Conn() *sql.Conn {
	return c.conn
}

// Close hands the connection back to the pool.
func (c *sqlConn) Close(ctx context.Context) {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	if err := c.conn.Close(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to return connection to pool")
	}
	atomic.AddUint64(&c.pool.connReturns, 1)
}
