package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Nathaniel-Dominguez/Limited-Draft-Analysis/internal/storage/repository"
)

// TxFunc is a function that runs within a transaction.
type TxFunc func(*sql.Tx) error

// WithTransaction executes the given function within a database transaction.
// It commits when fn returns nil and rolls back on error.
// If fn panics, the transaction is rolled back and the panic is re-raised.
func (db *DB) WithTransaction(ctx context.Context, fn TxFunc) (err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Ensure transaction is closed
	defer func() {
		if p := recover(); p != nil {
			// Rollback on panic
			_ = tx.Rollback()
			panic(p) // Re-raise panic
		} else if err != nil {
			// Rollback on error, keeping fn's error unwrappable
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
			}
		} else {
			// Commit on success
			err = tx.Commit()
			if err != nil {
				err = fmt.Errorf("failed to commit transaction: %w", err)
			}
		}
	}()

	err = fn(tx)
	return err
}

// inBatchTx runs fn against a batch repository bound to one transaction,
// so a batch and its records, summary and deck stats land together or not at all.
func (s *Service) inBatchTx(ctx context.Context, fn func(repository.BatchRepository) error) error {
	return s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		return fn(repository.NewBatchRepository(tx))
	})
}

// inCatalogTx is inBatchTx for the card catalog cache.
func (s *Service) inCatalogTx(ctx context.Context, fn func(repository.CatalogRepository) error) error {
	return s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		return fn(repository.NewCatalogRepository(tx))
	})
}
