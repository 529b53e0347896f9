package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/radieske/roulette-rooms-poc/internal/room-service/game"
	"github.com/radieske/roulette-rooms-poc/pkg/roulette"
)

// Postgres arquiva registros de jogadores e rodadas resolvidas. Escrita de
// melhor esforço: a cópia autoritativa vive na máquina de estados, o banco
// serve consulta e auditoria.
type Postgres struct{ db *sql.DB }

// NewPostgres retorna uma instância do repositório do room-service
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// UpsertPlayer grava o registro de um jogador recém-registrado
func (p *Postgres) UpsertPlayer(ctx context.Context, roomID string, pl game.Player) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO room_players (room_id, player_id, display_name, balance, updated_at)
		VALUES ($1,$2,$3,$4,NOW())
		ON CONFLICT (room_id, player_id) DO UPDATE SET
		  balance    = EXCLUDED.balance,
		  updated_at = NOW()`,
		roomID, pl.ID, pl.DisplayName, int64(pl.Balance),
	)
	return err
}

// InsertSpin grava uma rodada resolvida com os insumos de derivação em JSON
func (p *Postgres) InsertSpin(ctx context.Context, roomID string, res roulette.SpinResult) error {
	bets, err := json.Marshal(res.Bets)
	if err != nil {
		return err
	}
	winners, err := json.Marshal(res.Winners)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO spins (round_id, room_id, number, color, height, drawn_at, bets, winners)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (round_id) DO NOTHING`,
		res.RoundID, roomID, res.Number, string(res.Color), int64(res.Height), res.Timestamp, bets, winners,
	)
	return err
}
