package dto

import "github.com/radieske/roulette-rooms-poc/pkg/roulette"

type RegisterPlayerRequest struct {
	PlayerID       string `json:"id"`
	DisplayName    string `json:"display_name"`
	InitialBalance uint64 `json:"initial_balance"`
}

type PlaceBetRequest struct {
	PlayerID string        `json:"id"`
	Kind     roulette.Kind `json:"bet_kind"` // ex: "STRAIGHT", "RED", "DOZEN_2"
	Numbers  []int         `json:"covered_numbers,omitempty"`
	Stake    uint64        `json:"stake"`
}
