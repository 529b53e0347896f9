package game

import (
	"sort"

	"github.com/radieske/roulette-rooms-poc/pkg/roulette"
)

// Snapshot é a visão somente-leitura do estado de rodada exposta pela
// superfície de consulta. O deadline sai como segundos restantes, nunca na
// forma crua.
type Snapshot struct {
	RoomID            string               `json:"room_id"`
	Phase             Phase                `json:"phase"`
	Height            uint64               `json:"height"`
	BetCount          int                  `json:"bet_count"`
	StakedTotal       uint64               `json:"staked_total"`
	History           []int                `json:"history"`
	LastResult        *roulette.SpinResult `json:"last_result,omitempty"`
	DeadlineInSeconds *int64               `json:"deadline_in_seconds,omitempty"`
	PlayerCount       int                  `json:"player_count"`
}

// Snapshot monta a visão de consulta do room.
func (r *Room) Snapshot() Snapshot {
	s := Snapshot{
		RoomID:      r.id,
		Phase:       r.phase,
		Height:      r.height,
		BetCount:    len(r.bets),
		History:     append([]int(nil), r.history...),
		LastResult:  r.lastResult,
		PlayerCount: len(r.players),
	}
	for _, b := range r.bets {
		s.StakedTotal += b.Stake
	}
	if r.deadline != nil && r.phase == PhaseBetting {
		secs := int64(r.deadline.Sub(r.now()).Seconds())
		if secs < 0 {
			secs = 0
		}
		s.DeadlineInSeconds = &secs
	}
	return s
}

// RegisteredPlayers devolve cópias dos registros de jogadores, em ordem
// estável de id.
func (r *Room) RegisteredPlayers() []Player {
	out := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
