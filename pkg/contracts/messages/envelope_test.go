package messages

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/roulette-rooms-poc/pkg/roulette"
)

func TestRequestEnvelopeRoundTrip(t *testing.T) {
	reqs := []Request{
		RegisterPlayerRequest{PlayerID: "p1", DisplayName: "Ana", InitialBalance: 1000},
		PlaceBetRequest{PlayerID: "p1", Kind: roulette.Straight, Numbers: []int{17}, Stake: 100},
		StartRoundRequest{RequesterID: "p1"},
		SpinWheelRequest{RequesterID: "p1"},
	}
	for _, req := range reqs {
		b, err := EncodeRequest("ROOM_001", req)
		require.NoError(t, err)

		var env RequestEnvelope
		require.NoError(t, json.Unmarshal(b, &env))
		assert.Equal(t, "ROOM_001", env.RoomID)

		decoded, err := env.Decode()
		require.NoError(t, err)
		assert.Equal(t, req, decoded)
	}
}

func TestRequestEnvelopeUnknownKind(t *testing.T) {
	env := RequestEnvelope{Kind: RequestKind("cash_out"), RoomID: "ROOM_001", Payload: []byte(`{}`)}
	_, err := env.Decode()
	assert.Error(t, err)
}

func TestConfirmEnvelopeRoundTrip(t *testing.T) {
	confirms := []Confirm{
		PlayerRegisteredConfirm{PlayerID: "p1", DisplayName: "Ana", Balance: 1000, StateSeq: 1, Success: true},
		BetPlacedConfirm{PlayerID: "p1", NewBalance: 900, StateSeq: 2, Success: true,
			Bet: &roulette.Bet{BettorID: "p1", BettorName: "Ana", Kind: roulette.Straight, Covered: []int{17}, Stake: 100}},
		SpinResultBroadcast{PlayerID: "p1", Payout: 3500, NewBalance: 4400, StateSeq: 3,
			Result: roulette.SpinResult{RoundID: "r1", Number: 17, Color: roulette.ColorBlack}},
	}
	for _, c := range confirms {
		b, err := EncodeConfirm("ROOM_001", "p1", c)
		require.NoError(t, err)

		var env ConfirmEnvelope
		require.NoError(t, json.Unmarshal(b, &env))
		assert.Equal(t, "p1", env.PlayerID)

		decoded, err := env.Decode()
		require.NoError(t, err)
		assert.Equal(t, c.Seq(), decoded.Seq())
	}
}

func TestConfirmEnvelopeUnknownKind(t *testing.T) {
	env := ConfirmEnvelope{Kind: ConfirmKind("jackpot"), Payload: []byte(`{}`)}
	_, err := env.Decode()
	assert.Error(t, err)
}
