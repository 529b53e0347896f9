package messages

import "github.com/radieske/roulette-rooms-poc/pkg/roulette"

// Confirm é a união fechada das mensagens Room -> Player.
//
// Toda confirmação carrega valores ABSOLUTOS (saldo resultante, nunca
// delta) e um StateSeq monotônico por room, estampado na emissão. Entrega
// duplicada ou reordenada nunca aplica efeito duas vezes: o receptor
// ignora qualquer snapshot com StateSeq menor ou igual ao último aplicado.
type Confirm interface {
	isConfirm()
	// Seq devolve o StateSeq estampado pelo room na emissão.
	Seq() uint64
}

// PlayerRegisteredConfirm responde a um RegisterPlayerRequest.
type PlayerRegisteredConfirm struct {
	PlayerID    string `json:"id"`
	DisplayName string `json:"display_name"`
	Balance     uint64 `json:"balance"`
	StateSeq    uint64 `json:"state_seq"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

// BetPlacedConfirm responde a um PlaceBetRequest com o eco da aposta
// aceita e o saldo absoluto resultante.
type BetPlacedConfirm struct {
	PlayerID   string        `json:"id"`
	Bet        *roulette.Bet `json:"bet,omitempty"`
	NewBalance uint64        `json:"new_balance"`
	StateSeq   uint64        `json:"state_seq"`
	Success    bool          `json:"success"`
	Error      string        `json:"error,omitempty"`
}

// SpinResultBroadcast é o fan-out de resolução de rodada: um por jogador
// registrado, com o resultado completo, o payout do jogador e seu saldo
// absoluto após o crédito.
type SpinResultBroadcast struct {
	PlayerID   string              `json:"id"`
	Result     roulette.SpinResult `json:"result"`
	Payout     uint64              `json:"payout"`
	NewBalance uint64              `json:"new_balance"`
	StateSeq   uint64              `json:"state_seq"`
}

func (PlayerRegisteredConfirm) isConfirm() {}
func (BetPlacedConfirm) isConfirm()        {}
func (SpinResultBroadcast) isConfirm()     {}

func (c PlayerRegisteredConfirm) Seq() uint64 { return c.StateSeq }
func (c BetPlacedConfirm) Seq() uint64        { return c.StateSeq }
func (c SpinResultBroadcast) Seq() uint64     { return c.StateSeq }
