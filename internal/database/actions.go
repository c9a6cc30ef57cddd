// internal/database/actions.go
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jason-s-yu/thegame/internal/cache"
)

// ActionSink writes historian batches to Postgres.
type ActionSink struct {
	pool *pgxpool.Pool
}

// NewActionSink wraps an open pool.
func NewActionSink(pool *pgxpool.Pool) *ActionSink {
	return &ActionSink{pool: pool}
}

// WriteActions persists a batch in one transaction: every game row is upserted, every action
// inserted, and terminal actions close out their game.
func (s *ActionSink) WriteActions(ctx context.Context, records []cache.GameActionRecord) error {
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, rec := range records {
			if err := insertGameActionTx(ctx, tx, rec); err != nil {
				return fmt.Errorf("insertGameActionTx: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write %d actions: %w", len(records), err)
	}
	return nil
}

// MarkAbandoned marks a game as 'abandoned' if it was still marked as 'in_progress'.
func (s *ActionSink) MarkAbandoned(ctx context.Context, gameID uuid.UUID) error {
	q := `
		UPDATE games
		SET status = 'abandoned', end_time = NOW()
		WHERE id = $1 AND status = 'in_progress'
	`
	if _, err := s.pool.Exec(ctx, q, gameID); err != nil {
		return fmt.Errorf("mark game %v abandoned: %w", gameID, err)
	}
	return nil
}

// finalStatus maps a terminal action to the status stored on the game row.
func finalStatus(actionType string) (string, bool) {
	switch actionType {
	case "game_won":
		return "won", true
	case "game_lost":
		return "lost", true
	}
	return "", false
}

// insertGameActionTx inserts a single action record and upserts the game row if necessary.
// Replayed records are ignored.
func insertGameActionTx(ctx context.Context, tx pgx.Tx, rec cache.GameActionRecord) error {
	upsertGameQ := `
		INSERT INTO games (id, status, start_time)
		VALUES ($1, 'in_progress', NOW())
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := tx.Exec(ctx, upsertGameQ, rec.GameID); err != nil {
		return err
	}

	payload := rec.ActionPayload
	if payload == nil {
		payload = map[string]interface{}{}
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	actionInsertQ := `
		INSERT INTO game_actions (
			game_id, action_index, actor_id, action_type, action_payload, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (game_id, action_index) DO NOTHING
	`
	_, err = tx.Exec(ctx, actionInsertQ,
		rec.GameID, rec.ActionIndex, rec.ActorID, rec.ActionType, jsonPayload, recordedAt(rec),
	)
	if err != nil {
		return err
	}

	if status, ok := finalStatus(rec.ActionType); ok {
		finalizeQ := `
			UPDATE games
			SET status = $2, end_time = NOW()
			WHERE id = $1 AND status = 'in_progress'
		`
		if _, err := tx.Exec(ctx, finalizeQ, rec.GameID, status); err != nil {
			return err
		}
	}
	return nil
}

// recordedAt is the record's own timestamp, or now when the publisher left it unset.
func recordedAt(rec cache.GameActionRecord) time.Time {
	if rec.Timestamp == 0 {
		return time.Now().UTC()
	}
	return time.UnixMilli(rec.Timestamp).UTC()
}
