package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/radieske/roulette-rooms-poc/pkg/roulette"
)

// PostgresRepo arquiva resultados de rodada e o ledger de payouts.
// A dedupe por round_id transforma o fan-out at-least-once do broadcast em
// arquivamento exactly-once.
type PostgresRepo struct {
	DB *sql.DB
}

// NewPostgresRepo retorna uma instância de repositório Postgres
func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

// InsertResult grava um resultado de rodada. Devolve inserted=false quando
// o round_id já foi arquivado (duplicata ou outro envelope do fan-out).
func (r *PostgresRepo) InsertResult(ctx context.Context, roomID string, res roulette.SpinResult) (bool, error) {
	bets, err := json.Marshal(res.Bets)
	if err != nil {
		return false, err
	}
	const q = `
		INSERT INTO spin_results
		  (round_id, room_id, number, color, height, drawn_at, bets)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (round_id) DO NOTHING
	`
	tag, err := r.DB.ExecContext(ctx, q,
		res.RoundID, roomID, res.Number, string(res.Color),
		int64(res.Height), res.Timestamp, bets,
	)
	if err != nil {
		return false, err
	}
	n, err := tag.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// InsertLedger grava uma linha de crédito por vencedor da rodada
func (r *PostgresRepo) InsertLedger(ctx context.Context, roomID string, res roulette.SpinResult) error {
	const q = `
		INSERT INTO payout_ledger
		  (id, round_id, room_id, player_id, bet_kind, stake, payout, created_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,NOW())
	`
	for _, w := range res.Winners {
		if _, err := r.DB.ExecContext(ctx, q,
			uuid.NewString(), res.RoundID, roomID,
			w.BettorID, string(w.Kind), int64(w.Stake), int64(w.Payout),
		); err != nil {
			return err
		}
	}
	return nil
}
