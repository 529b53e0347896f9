package messages

import "github.com/radieske/roulette-rooms-poc/pkg/roulette"

// Request é a união fechada das mensagens Player -> Room. Todo despacho
// sobre ela acontece por type switch exaustivo; tipo novo sem braço novo
// vira erro de "unknown kind" na fronteira de decodificação.
type Request interface{ isRequest() }

// RegisterPlayerRequest pede o registro de um jogador no room.
// O room dedupa pelo id: reenvio para id conhecido devolve DuplicateId.
type RegisterPlayerRequest struct {
	PlayerID       string `json:"id"`
	DisplayName    string `json:"display_name"`
	InitialBalance uint64 `json:"initial_balance"`
}

// PlaceBetRequest pede a aceitação de uma aposta. O room NÃO dedupa
// apostas idênticas: cada entrega é uma tentativa distinta, o cliente é
// responsável por não reenviar.
type PlaceBetRequest struct {
	PlayerID string        `json:"id"`
	Kind     roulette.Kind `json:"bet_kind"`
	Numbers  []int         `json:"covered_numbers"`
	Stake    uint64        `json:"stake"`
}

// StartRoundRequest abre a janela de apostas de uma rodada. Idempotente:
// reenvio com rodada já aberta é no-op.
type StartRoundRequest struct {
	RequesterID string `json:"requester_id"`
}

// SpinWheelRequest pede a resolução da rodada. Qualquer jogador registrado
// pode disparar; requester vazio indica disparo forçado (deadline ou
// superfície de mutação).
type SpinWheelRequest struct {
	RequesterID string `json:"requester_id"`
}

func (RegisterPlayerRequest) isRequest() {}
func (PlaceBetRequest) isRequest()       {}
func (StartRoundRequest) isRequest()     {}
func (SpinWheelRequest) isRequest()      {}
