package sqlstore

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/tansive/archsrv/internal/archsrv/db/dberror"
	"github.com/tansive/archsrv/internal/archsrv/db/models"
	"github.com/tansive/archsrv/internal/common/apperrors"
)

const tableName = "architectures"

var (
	dropTableStmt   = "DROP TABLE IF EXISTS " + pq.QuoteIdentifier(tableName)
	createTableStmt = "CREATE TABLE " + pq.QuoteIdentifier(tableName) + ` (
		arch_id INT,
		name    VARCHAR(80),
		status  SMALLINT,
		version VARCHAR(10),
		putch   VARCHAR(10)
	)`
)

// ResetArchitectures drops the architectures table, if present, and creates it empty.
func (am *architectureManager) ResetArchitectures(ctx context.Context) apperrors.Error {
	if _, err := am.conn().ExecContext(ctx, dropTableStmt); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to drop architectures table")
		return dberror.Classify(err, "failed to drop architectures table")
	}
	if _, err := am.conn().ExecContext(ctx, createTableStmt); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to create architectures table")
		return dberror.Classify(err, "failed to create architectures table")
	}
	return nil
}

// CreateArchitecture inserts a row. Existing rows with the same arch_id are left alone.
func (am *architectureManager) CreateArchitecture(ctx context.Context, a *models.Architecture) apperrors.Error {
	query := `
		INSERT INTO architectures (arch_id, name, status, version, putch)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := am.conn().ExecContext(ctx, query, a.ArchID, a.Name, statusToSmallint(a.Status), a.Version, a.Putch)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Int32("arch_id", a.ArchID).Msg("failed to insert architecture")
		return dberror.Classify(err, "failed to insert architecture")
	}
	return nil
}

// UpdateArchitecture overwrites every row matching a.ArchID and returns the number of rows
// changed. No matching row is not an error.
func (am *architectureManager) UpdateArchitecture(ctx context.Context, a *models.Architecture) (int64, apperrors.Error) {
	query := `
		UPDATE architectures
		SET name = $2,
			status = $3,
			version = $4,
			putch = $5
		WHERE arch_id = $1
	`
	result, err := am.conn().ExecContext(ctx, query, a.ArchID, a.Name, statusToSmallint(a.Status), a.Version, a.Putch)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Int32("arch_id", a.ArchID).Msg("failed to update architecture")
		return 0, dberror.Classify(err, "failed to update architecture")
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to read rows affected")
		return 0, dberror.ErrDatabase.Err(err)
	}
	return rowsAffected, nil
}

// ListArchitectures returns every row in storage order.
func (am *architectureManager) ListArchitectures(ctx context.Context) ([]*models.Architecture, apperrors.Error) {
	query := `
		SELECT arch_id, name, status, version, putch
		FROM architectures
	`
	rows, err := am.conn().QueryContext(ctx, query)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list architectures")
		return nil, dberror.Classify(err, "failed to list architectures")
	}
	defer rows.Close()

	result := make([]*models.Architecture, 0)
	for rows.Next() {
		var (
			archID               sql.NullInt32
			name, version, putch sql.NullString
			status               sql.NullInt64
		)
		if err := rows.Scan(&archID, &name, &status, &version, &putch); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to scan architecture row")
			return nil, dberror.ErrDatabase.Err(err)
		}
		result = append(result, &models.Architecture{
			ArchID:  archID.Int32,
			Name:    name.String,
			Status:  status.Int64 != 0,
			Version: version.String,
			Putch:   putch.String,
		})
	}
	if err := rows.Err(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to iterate architecture rows")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return result, nil
}

// DeleteArchitecture removes every row matching archID and returns the number removed.
func (am *architectureManager) DeleteArchitecture(ctx context.Context, archID int32) (int64, apperrors.Error) {
	query := `
		DELETE FROM architectures
		WHERE arch_id = $1
	`
	result, err := am.conn().ExecContext(ctx, query, archID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Int32("arch_id", archID).Msg("failed to delete architecture")
		return 0, dberror.Classify(err, "failed to delete architecture")
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to read rows affected")
		return 0, dberror.ErrDatabase.Err(err)
	}
	return rowsAffected, nil
}

func (cm *connectionManager) Close(ctx context.Context) {
	cm.c.Close(ctx)
}

func statusToSmallint(status bool) int16 {
	if status {
		return 1
	}
	return 0
}
