package roulette

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"
)

// Código de fio estável por tipo de aposta, usado na derivação.
// Nunca reordenar: mudar um código muda todo número derivado.
func kindCode(k Kind) (byte, bool) {
	switch k {
	case Straight:
		return 1, true
	case Red:
		return 2, true
	case Black:
		return 3, true
	case Even:
		return 4, true
	case Odd:
		return 5, true
	case Low:
		return 6, true
	case High:
		return 7, true
	case Dozen1:
		return 8, true
	case Dozen2:
		return 9, true
	case Dozen3:
		return 10, true
	case Column1:
		return 11, true
	case Column2:
		return 12, true
	case Column3:
		return 13, true
	}
	return 0, false
}

// DeriveNumber deriva o número vencedor da rodada a partir dos insumos
// fechados no encerramento: timestamp do room, identidade do room, altura
// lógica e a lista ordenada de apostas aceitas.
//
// Ordem fixa dos bytes no hash (SHA-256):
//
//	uint64 BE UnixMicro(ts) || roomID || uint64 BE height ||
//	por aposta, na ordem de aceitação:
//	  bettorID || byte(kind) || byte(len(covered)) || byte por número || uint64 BE stake
//
// Número = uint64 BE dos 8 últimos bytes do hash, mod 37.
//
// Determinístico e re-derivável por qualquer observador com os mesmos
// insumos. Não é imprevisível contra o último apostador, que pode escolher
// a própria aposta observando as anteriores; limitação conhecida do
// esquema, sem etapa de commit-reveal.
func DeriveNumber(ts time.Time, roomID string, height uint64, bets []Bet) (int, error) {
	h := sha256.New()
	var buf [8]byte

	binary.BigEndian.PutUint64(buf[:], uint64(ts.UnixMicro()))
	h.Write(buf[:])
	h.Write([]byte(roomID))
	binary.BigEndian.PutUint64(buf[:], height)
	h.Write(buf[:])

	for _, b := range bets {
		code, ok := kindCode(b.Kind)
		if !ok {
			// aposta aceita com tipo desconhecido é violação de invariante
			return 0, fmt.Errorf("derive: unknown bet kind %q", b.Kind)
		}
		h.Write([]byte(b.BettorID))
		h.Write([]byte{code, byte(len(b.Covered))})
		for _, n := range b.Covered {
			h.Write([]byte{byte(n)})
		}
		binary.BigEndian.PutUint64(buf[:], b.Stake)
		h.Write(buf[:])
	}

	sum := h.Sum(nil)
	v := binary.BigEndian.Uint64(sum[len(sum)-8:])
	return int(v % 37), nil
}

// Verify re-deriva o número de um resultado a partir dos insumos gravados
// nele e confere com o número publicado.
func Verify(roomID string, res SpinResult) (bool, error) {
	n, err := DeriveNumber(res.Timestamp, roomID, res.Height, res.Bets)
	if err != nil {
		return false, err
	}
	return n == res.Number, nil
}
