package roulette

import "time"

// Color da casa sorteada na roda europeia.
type Color string

const (
	ColorGreen Color = "GREEN"
	ColorRed   Color = "RED"
	ColorBlack Color = "BLACK"
)

// ColorOf devolve a cor canônica de um número da roda (0 é verde).
func ColorOf(n int) Color {
	if n == 0 {
		return ColorGreen
	}
	for _, r := range redNumbers {
		if r == n {
			return ColorRed
		}
	}
	return ColorBlack
}

// Win é uma entrada vencedora dentro de um SpinResult, na ordem de
// aceitação das apostas.
type Win struct {
	BettorID   string `json:"bettor_id"`
	BettorName string `json:"bettor_name"`
	Kind       Kind   `json:"bet_kind"`
	Stake      uint64 `json:"stake"`
	Payout     uint64 `json:"payout"`
}

// SpinResult é o resultado imutável de uma rodada resolvida.
//
// Carrega todos os insumos da derivação (timestamp, altura e lista ordenada
// de apostas aceitas) para que qualquer parte re-derive e verifique Number
// com DeriveNumber.
type SpinResult struct {
	RoundID   string    `json:"round_id"`
	Number    int       `json:"number"`
	Color     Color     `json:"color"`
	Timestamp time.Time `json:"timestamp"`
	Height    uint64    `json:"height"`
	Bets      []Bet     `json:"bets"`
	Winners   []Win     `json:"winners"`
}

// Settle avalia todas as apostas aceitas contra o número sorteado e devolve
// as entradas vencedoras na ordem de aceitação. Erro aqui indica aposta
// inválida dentro da rodada, ou seja, bug: o chamador deve abortar sem
// aplicar efeito algum.
func Settle(drawn int, bets []Bet) ([]Win, error) {
	var wins []Win
	for _, b := range bets {
		credit, err := Payout(b, drawn)
		if err != nil {
			return nil, err
		}
		if credit == 0 {
			continue
		}
		wins = append(wins, Win{
			BettorID:   b.BettorID,
			BettorName: b.BettorName,
			Kind:       b.Kind,
			Stake:      b.Stake,
			Payout:     credit,
		})
	}
	return wins, nil
}
