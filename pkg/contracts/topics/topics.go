package topics

const (
	// Mensagens Player -> Room
	RoomRequests = "room_requests"

	// Mensagens Room -> Player (confirmações e broadcast de resultado)
	RoomConfirms = "room_confirms"

	// DLQ
	RoomRequestsDLQ = "room_requests_dlq"

	// Canal Redis usado pelo fan-out WebSocket do room-service
	SpinResultsChannel = "spin_results_broadcast"
)
