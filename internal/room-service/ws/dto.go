package ws

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// RoomID: obrigatório para subscribe/unsubscribe
type ClientMsg struct {
	Type   string `json:"type"`   // subscribe | unsubscribe | ping
	RoomID string `json:"roomId"` // requerido em subscribe/unsubscribe
}

// ResultUpdate representa um resultado de rodada enviado para clientes WebSocket
type ResultUpdate struct {
	RoomID  string      `json:"roomId"`
	Payload interface{} `json:"payload"`
}
