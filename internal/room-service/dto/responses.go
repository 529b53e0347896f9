package dto

import "github.com/radieske/roulette-rooms-poc/pkg/roulette"

type RegisterPlayerResponse struct {
	PlayerID string `json:"id"`
	Balance  uint64 `json:"balance"`
	Message  string `json:"message,omitempty"`
}

type PlaceBetResponse struct {
	Bet        *roulette.Bet `json:"bet,omitempty"`
	NewBalance uint64        `json:"new_balance"`
	Message    string        `json:"message,omitempty"`
}

type StartRoundResponse struct {
	Started           bool  `json:"started"`
	DeadlineInSeconds int64 `json:"deadline_in_seconds"`
}

type SpinResponse struct {
	Result *roulette.SpinResult `json:"result"`
}
