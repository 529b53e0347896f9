package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/roulette-rooms-poc/pkg/contracts/messages"
	"github.com/radieske/roulette-rooms-poc/pkg/roulette"
)

func TestApplyHappyPath(t *testing.T) {
	s := New("ROOM_A", "p1", "Ana")

	s.Apply(messages.PlayerRegisteredConfirm{
		PlayerID: "p1", DisplayName: "Ana", Balance: 1000, StateSeq: 1, Success: true,
	})
	assert.True(t, s.Registered)
	assert.Equal(t, uint64(1000), s.Balance)

	bet := &roulette.Bet{BettorID: "p1", Kind: roulette.Straight, Covered: []int{17}, Stake: 100}
	s.Apply(messages.BetPlacedConfirm{
		PlayerID: "p1", Bet: bet, NewBalance: 900, StateSeq: 2, Success: true,
	})
	assert.Equal(t, uint64(900), s.Balance)
	assert.Equal(t, bet, s.LastBet)

	res := roulette.SpinResult{RoundID: "r1", Number: 17, Color: roulette.ColorBlack}
	s.Apply(messages.SpinResultBroadcast{
		PlayerID: "p1", Result: res, Payout: 3500, NewBalance: 4400, StateSeq: 3,
	})
	assert.Equal(t, uint64(4400), s.Balance)
	assert.Equal(t, uint64(3500), s.LastPayout)
	require.NotNil(t, s.LastResult)
	assert.Equal(t, "r1", s.LastResult.RoundID)
	assert.Nil(t, s.LastBet)
}

// Cenário de reentrega: o mesmo broadcast aplicado duas vezes deixa o
// espelho exatamente como depois da primeira aplicação.
func TestApplyDuplicateBroadcastIsIdempotent(t *testing.T) {
	s := New("ROOM_A", "p1", "Ana")
	s.Apply(messages.PlayerRegisteredConfirm{PlayerID: "p1", Balance: 1000, StateSeq: 1, Success: true})

	bc := messages.SpinResultBroadcast{
		PlayerID: "p1", Result: roulette.SpinResult{RoundID: "r1", Number: 4}, Payout: 120, NewBalance: 1120, StateSeq: 2,
	}
	s.Apply(bc)
	after := *s
	s.Apply(bc)
	assert.Equal(t, after, *s)
}

// Cenário de reordenação: a confirmação de aposta chega antes da de
// registro; a de registro, atrasada, não pode regredir o saldo.
func TestApplyStaleConfirmIgnored(t *testing.T) {
	s := New("ROOM_A", "p1", "Ana")

	s.Apply(messages.BetPlacedConfirm{
		PlayerID:   "p1",
		Bet:        &roulette.Bet{BettorID: "p1", Kind: roulette.Red, Stake: 50},
		NewBalance: 950,
		StateSeq:   2,
		Success:    true,
	})
	assert.True(t, s.Registered) // aposta aceita implica registro
	assert.Equal(t, uint64(950), s.Balance)

	s.Apply(messages.PlayerRegisteredConfirm{
		PlayerID: "p1", Balance: 1000, StateSeq: 1, Success: true,
	})
	assert.Equal(t, uint64(950), s.Balance)
}

func TestApplyFailureKeepsBalance(t *testing.T) {
	s := New("ROOM_A", "p1", "Ana")
	s.Apply(messages.PlayerRegisteredConfirm{PlayerID: "p1", Balance: 100, StateSeq: 1, Success: true})

	s.Apply(messages.BetPlacedConfirm{
		PlayerID: "p1", NewBalance: 100, StateSeq: 2, Success: false, Error: "insufficient balance",
	})
	assert.Equal(t, uint64(100), s.Balance)
	assert.Equal(t, "insufficient balance", s.LastError)
	assert.Nil(t, s.LastBet)

	// a próxima confirmação boa limpa o erro
	s.Apply(messages.BetPlacedConfirm{
		PlayerID:   "p1",
		Bet:        &roulette.Bet{BettorID: "p1", Kind: roulette.Odd, Stake: 10},
		NewBalance: 90,
		StateSeq:   3,
		Success:    true,
	})
	assert.Empty(t, s.LastError)
	assert.Equal(t, uint64(90), s.Balance)
}

func TestRequestBuilders(t *testing.T) {
	s := New("ROOM_A", "p1", "Ana")

	reg := s.RegisterRequest(500)
	assert.Equal(t, messages.RegisterPlayerRequest{PlayerID: "p1", DisplayName: "Ana", InitialBalance: 500}, reg)

	bet := s.BetRequest(roulette.Straight, []int{7}, 25)
	assert.Equal(t, messages.PlaceBetRequest{PlayerID: "p1", Kind: roulette.Straight, Numbers: []int{7}, Stake: 25}, bet)

	assert.Equal(t, "p1", s.StartRequest().RequesterID)
	assert.Equal(t, "p1", s.SpinRequest().RequesterID)
}
