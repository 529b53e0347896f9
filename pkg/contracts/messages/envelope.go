package messages

import (
	"encoding/json"
	"fmt"
)

// RequestKind discrimina o payload de um RequestEnvelope.
type RequestKind string

const (
	KindRegisterPlayer RequestKind = "register_player"
	KindPlaceBet       RequestKind = "place_bet"
	KindStartRound     RequestKind = "start_round"
	KindSpinWheel      RequestKind = "spin_wheel"
)

// ConfirmKind discrimina o payload de um ConfirmEnvelope.
type ConfirmKind string

const (
	KindPlayerRegistered ConfirmKind = "player_registered"
	KindBetPlaced        ConfirmKind = "bet_placed"
	KindSpinResult       ConfirmKind = "spin_result"
)

// RequestEnvelope embala uma mensagem Player -> Room no fio (valor da
// mensagem Kafka; a chave é o room id, mantendo o tráfego de um room na
// mesma partição).
type RequestEnvelope struct {
	Kind    RequestKind     `json:"kind"`
	RoomID  string          `json:"room_id"`
	Payload json.RawMessage `json:"payload"`
}

// ConfirmEnvelope embala uma mensagem Room -> Player. PlayerID é o
// destinatário; broadcasts geram um envelope por jogador registrado.
type ConfirmEnvelope struct {
	Kind     ConfirmKind     `json:"kind"`
	RoomID   string          `json:"room_id"`
	PlayerID string          `json:"player_id"`
	Payload  json.RawMessage `json:"payload"`
}

// EncodeRequest embala um Request no envelope de fio.
func EncodeRequest(roomID string, req Request) ([]byte, error) {
	var kind RequestKind
	switch req.(type) {
	case RegisterPlayerRequest, *RegisterPlayerRequest:
		kind = KindRegisterPlayer
	case PlaceBetRequest, *PlaceBetRequest:
		kind = KindPlaceBet
	case StartRoundRequest, *StartRoundRequest:
		kind = KindStartRound
	case SpinWheelRequest, *SpinWheelRequest:
		kind = KindSpinWheel
	default:
		return nil, fmt.Errorf("encode request: unknown type %T", req)
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return json.Marshal(RequestEnvelope{Kind: kind, RoomID: roomID, Payload: payload})
}

// Decode valida o kind e desserializa o payload no tipo concreto.
// Kind desconhecido é erro, nunca um default silencioso.
func (e RequestEnvelope) Decode() (Request, error) {
	switch e.Kind {
	case KindRegisterPlayer:
		var m RegisterPlayerRequest
		return m, json.Unmarshal(e.Payload, &m)
	case KindPlaceBet:
		var m PlaceBetRequest
		return m, json.Unmarshal(e.Payload, &m)
	case KindStartRound:
		var m StartRoundRequest
		return m, json.Unmarshal(e.Payload, &m)
	case KindSpinWheel:
		var m SpinWheelRequest
		return m, json.Unmarshal(e.Payload, &m)
	}
	return nil, fmt.Errorf("decode request: unknown kind %q", e.Kind)
}

// EncodeConfirm embala um Confirm no envelope de fio.
func EncodeConfirm(roomID, playerID string, c Confirm) ([]byte, error) {
	var kind ConfirmKind
	switch c.(type) {
	case PlayerRegisteredConfirm, *PlayerRegisteredConfirm:
		kind = KindPlayerRegistered
	case BetPlacedConfirm, *BetPlacedConfirm:
		kind = KindBetPlaced
	case SpinResultBroadcast, *SpinResultBroadcast:
		kind = KindSpinResult
	default:
		return nil, fmt.Errorf("encode confirm: unknown type %T", c)
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return json.Marshal(ConfirmEnvelope{Kind: kind, RoomID: roomID, PlayerID: playerID, Payload: payload})
}

// Decode valida o kind e desserializa o payload no tipo concreto.
func (e ConfirmEnvelope) Decode() (Confirm, error) {
	switch e.Kind {
	case KindPlayerRegistered:
		var m PlayerRegisteredConfirm
		return m, json.Unmarshal(e.Payload, &m)
	case KindBetPlaced:
		var m BetPlacedConfirm
		return m, json.Unmarshal(e.Payload, &m)
	case KindSpinResult:
		var m SpinResultBroadcast
		return m, json.Unmarshal(e.Payload, &m)
	}
	return nil, fmt.Errorf("decode confirm: unknown kind %q", e.Kind)
}
