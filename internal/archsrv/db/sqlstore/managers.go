// Package sqlstore implements the architecture storage operations over a pooled
// connection. Statements use numbered placeholders, which both Postgres and SQLite accept.
package sqlstore

import (
	"database/sql"

	"github.com/tansive/archsrv/internal/archsrv/db/dbmanager"
)

type architectureManager struct {
	c dbmanager.PooledConn
}

func (am *architectureManager) conn() *sql.Conn {
	return am.c.Conn()
}

// NewArchitectureManager binds the architecture operations to a checked out connection.
func NewArchitectureManager(c dbmanager.PooledConn) *architectureManager {
	return &architectureManager{c: c}
}

type connectionManager struct {
	c dbmanager.PooledConn
}

// NewConnectionManager wraps a checked out connection so it can be returned to the pool.
func NewConnectionManager(c dbmanager.PooledConn) *connectionManager {
	return &connectionManager{c: c}
}
