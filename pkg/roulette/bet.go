package roulette

import (
	"errors"
	"sort"
)

// Kind identifica o tipo de aposta na roleta europeia (zero único).
type Kind string

const (
	Straight Kind = "STRAIGHT"
	Red      Kind = "RED"
	Black    Kind = "BLACK"
	Even     Kind = "EVEN"
	Odd      Kind = "ODD"
	Low      Kind = "LOW"  // 1-18
	High     Kind = "HIGH" // 19-36
	Dozen1   Kind = "DOZEN_1"
	Dozen2   Kind = "DOZEN_2"
	Dozen3   Kind = "DOZEN_3"
	Column1  Kind = "COLUMN_1"
	Column2  Kind = "COLUMN_2"
	Column3  Kind = "COLUMN_3"
)

var (
	ErrInvalidBetShape = errors.New("invalid bet shape")
)

// Bet é uma aposta aceita por um room. Imutável após a aceitação.
type Bet struct {
	BettorID   string `json:"bettor_id"`
	BettorName string `json:"bettor_name"`
	Kind       Kind   `json:"bet_kind"`
	Covered    []int  `json:"covered_numbers"`
	Stake      uint64 `json:"stake"`
}

// Conjuntos canônicos da roda europeia. O zero não pertence a nenhum deles.
var redNumbers = []int{1, 3, 5, 7, 9, 12, 14, 16, 18, 19, 21, 23, 25, 27, 30, 32, 34, 36}

func rangeSet(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, n)
	}
	return out
}

func stepSet(from int) []int {
	out := make([]int, 0, 12)
	for n := from; n <= 36; n += 3 {
		out = append(out, n)
	}
	return out
}

func blackSet() []int {
	red := make(map[int]bool, len(redNumbers))
	for _, n := range redNumbers {
		red[n] = true
	}
	out := make([]int, 0, 18)
	for n := 1; n <= 36; n++ {
		if !red[n] {
			out = append(out, n)
		}
	}
	return out
}

func paritySet(rem int) []int {
	out := make([]int, 0, 18)
	for n := 1; n <= 36; n++ {
		if n%2 == rem {
			out = append(out, n)
		}
	}
	return out
}

// canonical devolve o conjunto coberto implícito pelo tipo de aposta.
// Straight não tem conjunto implícito (o número vem do apostador).
func canonical(k Kind) []int {
	switch k {
	case Red:
		return append([]int(nil), redNumbers...)
	case Black:
		return blackSet()
	case Even:
		return paritySet(0)
	case Odd:
		return paritySet(1)
	case Low:
		return rangeSet(1, 18)
	case High:
		return rangeSet(19, 36)
	case Dozen1:
		return rangeSet(1, 12)
	case Dozen2:
		return rangeSet(13, 24)
	case Dozen3:
		return rangeSet(25, 36)
	case Column1:
		return stepSet(1)
	case Column2:
		return stepSet(2)
	case Column3:
		return stepSet(3)
	}
	return nil
}

// Covered valida a forma da aposta e devolve o conjunto coberto canônico.
//
// Regras:
//   - Straight: exatamente 1 número em [0,36]
//   - demais tipos: lista vazia (conjunto implícito pelo tipo) ou o próprio
//     conjunto canônico enviado explicitamente
//
// Qualquer outra forma é ErrInvalidBetShape. A validação acontece na
// aceitação, nunca na avaliação.
func Covered(k Kind, numbers []int) ([]int, error) {
	if k == Straight {
		if len(numbers) != 1 || numbers[0] < 0 || numbers[0] > 36 {
			return nil, ErrInvalidBetShape
		}
		return []int{numbers[0]}, nil
	}

	set := canonical(k)
	if set == nil {
		// tipo desconhecido
		return nil, ErrInvalidBetShape
	}
	if len(numbers) == 0 {
		return set, nil
	}
	if !sameSet(numbers, set) {
		return nil, ErrInvalidBetShape
	}
	return set, nil
}

func sameSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	sa := append([]int(nil), a...)
	sort.Ints(sa)
	for i := range sa {
		if sa[i] != b[i] {
			return false
		}
	}
	return true
}

// Multiplier devolve o multiplicador de lucro líquido do tipo de aposta.
func Multiplier(k Kind) (uint64, error) {
	switch k {
	case Straight:
		return 35, nil
	case Red, Black, Even, Odd, Low, High:
		return 1, nil
	case Dozen1, Dozen2, Dozen3, Column1, Column2, Column3:
		return 2, nil
	}
	return 0, ErrInvalidBetShape
}

// Wins avalia se a aposta ganha com o número sorteado. Covered é canônico
// (resultado de Covered), então pertencimento ao conjunto decide todos os
// tipos, inclusive o zero perdendo toda aposta externa.
func Wins(b Bet, drawn int) bool {
	for _, n := range b.Covered {
		if n == drawn {
			return true
		}
	}
	return false
}

// Payout calcula o crédito de lucro líquido de uma aposta vencedora
// (stake * multiplicador; a stake já foi debitada na aceitação).
// Aposta perdedora credita zero.
func Payout(b Bet, drawn int) (uint64, error) {
	if !Wins(b, drawn) {
		return 0, nil
	}
	m, err := Multiplier(b.Kind)
	if err != nil {
		return 0, err
	}
	return b.Stake * m, nil
}
