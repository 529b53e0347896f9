package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/roulette-rooms-poc/internal/room-service/dto"
	"github.com/radieske/roulette-rooms-poc/internal/room-service/game"
	"github.com/radieske/roulette-rooms-poc/pkg/contracts/messages"
)

// API expõe as superfícies de mutação e consulta de um room por REST.
// Cada mutação mapeia 1:1 pra um handler da máquina de estados; a chamada
// atravessa o actor da sala, então nunca compete com o tráfego Kafka.
type API struct {
	Log   *zap.Logger
	Rooms *game.Manager
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/v1/rooms/{room}/players", a.registerPlayer) // Registra jogador
	r.Post("/v1/rooms/{room}/bets", a.placeBet)          // Aceita aposta
	r.Post("/v1/rooms/{room}/start", a.startRound)       // Abre janela de apostas
	r.Post("/v1/rooms/{room}/spin", a.spinWheel)         // Resolve a rodada (forçado)
	r.Get("/v1/rooms/{room}/state", a.getState)          // Estado da rodada
	r.Get("/v1/rooms/{room}/players", a.listPlayers)     // Registro de jogadores
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusForError traduz a taxonomia de erros do room pra HTTP
func statusForError(msg string) int {
	switch msg {
	case game.ErrDuplicateID.Error():
		return http.StatusConflict
	case game.ErrUnknownPlayer.Error():
		return http.StatusNotFound
	case game.ErrInsufficientBalance.Error():
		return http.StatusUnprocessableEntity
	case game.ErrInvalidBetShape.Error():
		return http.StatusBadRequest
	case game.ErrInvalidPhase.Error():
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (a *API) registerPlayer(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "room")
	var req dto.RegisterPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.PlayerID == "" || req.DisplayName == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	out, err := a.Rooms.Room(roomID).Do(r.Context(), messages.RegisterPlayerRequest{
		PlayerID:       req.PlayerID,
		DisplayName:    req.DisplayName,
		InitialBalance: req.InitialBalance,
	})
	if err != nil || len(out) == 0 {
		http.Error(w, "room unavailable", http.StatusServiceUnavailable)
		return
	}

	c, ok := out[0].Confirm.(messages.PlayerRegisteredConfirm)
	if !ok {
		http.Error(w, "unexpected confirm", http.StatusInternalServerError)
		return
	}
	if !c.Success {
		writeJSON(w, statusForError(c.Error), dto.RegisterPlayerResponse{
			PlayerID: req.PlayerID, Message: c.Error,
		})
		return
	}
	writeJSON(w, http.StatusCreated, dto.RegisterPlayerResponse{
		PlayerID: c.PlayerID, Balance: c.Balance,
	})
}

func (a *API) placeBet(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "room")
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.PlayerID == "" || req.Kind == "" || req.Stake == 0 {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	out, err := a.Rooms.Room(roomID).Do(r.Context(), messages.PlaceBetRequest{
		PlayerID: req.PlayerID,
		Kind:     req.Kind,
		Numbers:  req.Numbers,
		Stake:    req.Stake,
	})
	if err != nil || len(out) == 0 {
		http.Error(w, "room unavailable", http.StatusServiceUnavailable)
		return
	}

	c, ok := out[0].Confirm.(messages.BetPlacedConfirm)
	if !ok {
		http.Error(w, "unexpected confirm", http.StatusInternalServerError)
		return
	}
	if !c.Success {
		writeJSON(w, statusForError(c.Error), dto.PlaceBetResponse{
			NewBalance: c.NewBalance, Message: c.Error,
		})
		return
	}
	writeJSON(w, http.StatusOK, dto.PlaceBetResponse{Bet: c.Bet, NewBalance: c.NewBalance})
}

func (a *API) startRound(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "room")
	actor := a.Rooms.Room(roomID)
	if _, err := actor.Do(r.Context(), messages.StartRoundRequest{}); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	snap, err := actor.Snapshot(r.Context())
	if err != nil {
		http.Error(w, "room unavailable", http.StatusServiceUnavailable)
		return
	}
	resp := dto.StartRoundResponse{Started: snap.Phase == game.PhaseBetting}
	if snap.DeadlineInSeconds != nil {
		resp.DeadlineInSeconds = *snap.DeadlineInSeconds
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) spinWheel(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "room")
	// requester vazio = disparo forçado pela superfície de mutação
	out, err := a.Rooms.Room(roomID).Do(r.Context(), messages.SpinWheelRequest{})
	if err != nil {
		writeJSON(w, statusForError(err.Error()), map[string]string{"error": err.Error()})
		return
	}
	if len(out) == 0 {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "nothing to resolve"})
		return
	}
	b, ok := out[0].Confirm.(messages.SpinResultBroadcast)
	if !ok {
		http.Error(w, "unexpected confirm", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dto.SpinResponse{Result: &b.Result})
}

func (a *API) getState(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "room")
	snap, err := a.Rooms.Room(roomID).Snapshot(r.Context())
	if err != nil {
		http.Error(w, "room unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (a *API) listPlayers(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "room")
	players, err := a.Rooms.Room(roomID).Players(r.Context())
	if err != nil {
		http.Error(w, "room unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, players)
}
