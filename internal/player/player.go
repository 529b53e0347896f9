// Package player implementa o contexto local de um participante: o espelho
// nunca-autoritativo do próprio registro e os builders das mensagens de
// requisição pro room.
package player

import (
	"github.com/radieske/roulette-rooms-poc/pkg/contracts/messages"
	"github.com/radieske/roulette-rooms-poc/pkg/roulette"
)

// State é o espelho local de um jogador. Só muda aplicando confirmações
// recebidas do room; toda aplicação é idempotente porque confirmações
// carregam saldo absoluto e um StateSeq monotônico — snapshot atrasado ou
// duplicado nunca sobrescreve um mais novo.
type State struct {
	RoomID      string
	PlayerID    string
	DisplayName string

	Registered bool
	Balance    uint64

	LastBet    *roulette.Bet
	LastResult *roulette.SpinResult
	LastPayout uint64
	LastError  string

	lastSeq uint64
}

func New(roomID, playerID, displayName string) *State {
	return &State{RoomID: roomID, PlayerID: playerID, DisplayName: displayName}
}

// RegisterRequest monta a mensagem de registro com o saldo inicial pedido.
func (s *State) RegisterRequest(initial uint64) messages.RegisterPlayerRequest {
	return messages.RegisterPlayerRequest{
		PlayerID:       s.PlayerID,
		DisplayName:    s.DisplayName,
		InitialBalance: initial,
	}
}

// BetRequest monta a mensagem de aposta. O room não dedupa apostas: não
// reenvie a mesma mensagem esperando idempotência.
func (s *State) BetRequest(kind roulette.Kind, numbers []int, stake uint64) messages.PlaceBetRequest {
	return messages.PlaceBetRequest{
		PlayerID: s.PlayerID,
		Kind:     kind,
		Numbers:  numbers,
		Stake:    stake,
	}
}

// StartRequest monta a mensagem de abertura de rodada.
func (s *State) StartRequest() messages.StartRoundRequest {
	return messages.StartRoundRequest{RequesterID: s.PlayerID}
}

// SpinRequest monta a mensagem de resolução de rodada.
func (s *State) SpinRequest() messages.SpinWheelRequest {
	return messages.SpinWheelRequest{RequesterID: s.PlayerID}
}

// Apply aplica uma confirmação no espelho local. Seguro sob entrega
// at-least-once fora de ordem: aplica duas vezes = aplica uma. O switch é
// exaustivo sobre a união fechada de confirmações.
func (s *State) Apply(c messages.Confirm) {
	if c.Seq() <= s.lastSeq {
		return // entrega atrasada ou duplicada
	}
	s.lastSeq = c.Seq()

	switch m := c.(type) {
	case messages.PlayerRegisteredConfirm:
		if !m.Success {
			s.LastError = m.Error
			return
		}
		s.Registered = true
		s.Balance = m.Balance
		s.LastError = ""

	case messages.BetPlacedConfirm:
		if !m.Success {
			s.LastError = m.Error
			return
		}
		// aposta aceita implica registro, mesmo que o confirm de
		// registro tenha se perdido ou chegado atrasado
		s.Registered = true
		s.Balance = m.NewBalance
		s.LastBet = m.Bet
		s.LastError = ""

	case messages.SpinResultBroadcast:
		s.Balance = m.NewBalance
		s.LastResult = &m.Result
		s.LastPayout = m.Payout
		s.LastBet = nil
		s.LastError = ""
	}
}
