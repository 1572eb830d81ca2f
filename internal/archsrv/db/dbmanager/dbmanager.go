// Package dbmanager owns the database connection pool. Each request checks out a single
// connection, runs its statement on it and hands it back with Close.
package dbmanager

import (
	"context"
	"database/sql"
)

// Pool bounds fixed at startup.
const (
	MinConns = 10
	MaxConns = 15
)

// Pool is a bounded pool of database connections.
type Pool interface {
	// Conn checks out a connection. The caller must Close it.
	Conn(ctx context.Context) (PooledConn, error)
	// Stats returns the number of connection checkouts and returns.
	Stats() (requests, returns uint64)
	// OpenConns returns the number of open connections, idle or in use.
	OpenConns() int
	// Driver returns the database/sql driver name backing the pool.
	Driver() string
	// Close closes every connection in the pool.
	Close() error
}

// PooledConn is a connection checked out of a Pool.
type PooledConn interface {
	// Conn returns the underlying *sql.Conn. Do not close it directly.
	Conn() *sql.Conn
	// Close returns the connection to the pool. It is safe to call more than once.
	Close(ctx context.Context)
}
