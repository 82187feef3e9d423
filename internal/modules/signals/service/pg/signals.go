package pg

import (
	"context"
	"fmt"

	"signal_bot/internal/models"
	"signal_bot/pkg/db"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
)

// Signals persists snapshots of tracked signals. The whole record goes into a
// jsonb column: the registry is the source of truth, the table only survives
// restarts.
type Signals struct {
	db *db.PgTxManager
}

func NewSignals(txm *db.PgTxManager) *Signals {
	return &Signals{db: txm}
}

const (
	upsertActiveSQL = `
		INSERT INTO active_signals (instrument, snapshot, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (instrument) DO UPDATE SET snapshot = $2, updated_at = now()`
	deleteActiveSQL = `DELETE FROM active_signals WHERE instrument = $1`
	insertClosedSQL = `INSERT INTO closed_signals (instrument, snapshot, closed_at) VALUES ($1, $2, now())`
	selectActiveSQL = `SELECT snapshot FROM active_signals`
)

func (s *Signals) SaveActive(ctx context.Context, sig *models.Signal) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.SaveActive: %w", err)
		}
	}()

	var data []byte
	data, err = sonic.Marshal(sig)
	if err != nil {
		return err
	}

	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, upsertActiveSQL, sig.Instrument, data)
		return err
	})
}

func (s *Signals) DeleteActive(ctx context.Context, instrument string) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.DeleteActive: %w", err)
		}
	}()

	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, deleteActiveSQL, instrument)
		return err
	})
}

func (s *Signals) SaveClosed(ctx context.Context, sig models.Signal) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.SaveClosed: %w", err)
		}
	}()

	var data []byte
	data, err = sonic.Marshal(sig)
	if err != nil {
		return err
	}

	return s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, insertClosedSQL, sig.Instrument, data)
		return err
	})
}

func (s *Signals) LoadActive(ctx context.Context) (signals []*models.Signal, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.LoadActive: %w", err)
		}
	}()

	err = s.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctxTx, selectActiveSQL)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var data []byte
			if err := rows.Scan(&data); err != nil {
				return err
			}
			var sig models.Signal
			if err := sonic.Unmarshal(data, &sig); err != nil {
				return err
			}
			signals = append(signals, &sig)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return signals, nil
}
