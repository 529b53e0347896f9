package game

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/radieske/roulette-rooms-poc/pkg/contracts/messages"
	"github.com/radieske/roulette-rooms-poc/pkg/roulette"
)

// Phase da máquina de estados de um room.
type Phase string

const (
	PhaseIdle      Phase = "IDLE"
	PhaseBetting   Phase = "BETTING"
	PhaseResolving Phase = "RESOLVING"
)

var (
	ErrDuplicateID         = errors.New("duplicate id")
	ErrUnknownPlayer       = errors.New("unknown player")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidPhase        = errors.New("invalid phase transition")

	// ErrInvalidBetShape re-exportado do engine pra quem só importa game.
	ErrInvalidBetShape = roulette.ErrInvalidBetShape
)

// Player é o registro autoritativo de um participante dentro do room.
// O saldo só muda por registro, débito de stake e crédito de payout.
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Balance     uint64 `json:"balance"`
}

// Outgoing é uma confirmação pronta pra despacho, com o destinatário.
type Outgoing struct {
	PlayerID string
	Confirm  messages.Confirm
}

// Options parametriza um Room. Zero value usa os defaults.
type Options struct {
	BettingWindow time.Duration
	HistoryCap    int
	Now           func() time.Time
	// Derive permite injetar a derivação nos testes; default DeriveNumber.
	Derive func(ts time.Time, roomID string, height uint64, bets []roulette.Bet) (int, error)
}

const (
	defaultBettingWindow = 30 * time.Second
	defaultHistoryCap    = 10
)

// Room é a máquina de estados autoritativa de uma sala. Não tem lock: por
// construção todo acesso passa pelo Actor, que executa um handler por vez
// até o fim.
type Room struct {
	id string

	phase      Phase
	players    map[string]*Player
	order      []string // ordem de registro, p/ fan-out determinístico
	bets       []roulette.Bet
	lastResult *roulette.SpinResult
	history    []int
	deadline   *time.Time

	height uint64 // rodadas resolvidas (altura lógica, insumo da derivação)
	seq    uint64 // sequência monotônica estampada em cada confirmação

	window     time.Duration
	historyCap int
	now        func() time.Time
	derive     func(time.Time, string, uint64, []roulette.Bet) (int, error)
}

// NewRoom cria um room vazio em fase Idle.
func NewRoom(id string, opts Options) *Room {
	if opts.BettingWindow <= 0 {
		opts.BettingWindow = defaultBettingWindow
	}
	if opts.HistoryCap <= 0 {
		opts.HistoryCap = defaultHistoryCap
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Derive == nil {
		opts.Derive = roulette.DeriveNumber
	}
	return &Room{
		id:         id,
		phase:      PhaseIdle,
		players:    make(map[string]*Player),
		window:     opts.BettingWindow,
		historyCap: opts.HistoryCap,
		now:        opts.Now,
		derive:     opts.Derive,
	}
}

func (r *Room) ID() string { return r.id }

func (r *Room) nextSeq() uint64 {
	r.seq++
	return r.seq
}

// RegisterPlayer insere um jogador com o saldo inicial concedido.
// Reenvio pro mesmo id devolve ErrDuplicateID sem tocar no registro.
func (r *Room) RegisterPlayer(id, name string, initial uint64) (Player, error) {
	if _, ok := r.players[id]; ok {
		return Player{}, ErrDuplicateID
	}
	p := &Player{ID: id, DisplayName: name, Balance: initial}
	r.players[id] = p
	r.order = append(r.order, id)
	return *p, nil
}

// PlaceBet valida e aceita uma aposta: debita a stake, anexa a aposta à
// rodada corrente e abre a fase Betting se o room estava Idle. Ou todos os
// efeitos acontecem, ou nenhum.
func (r *Room) PlaceBet(id string, kind roulette.Kind, numbers []int, stake uint64) (roulette.Bet, uint64, error) {
	p, ok := r.players[id]
	if !ok {
		return roulette.Bet{}, 0, ErrUnknownPlayer
	}
	covered, err := roulette.Covered(kind, numbers)
	if err != nil {
		return roulette.Bet{}, p.Balance, err
	}
	if stake == 0 || stake > p.Balance {
		return roulette.Bet{}, p.Balance, ErrInsufficientBalance
	}

	// validações completas acima; daqui pra baixo só commit
	p.Balance -= stake
	bet := roulette.Bet{
		BettorID:   p.ID,
		BettorName: p.DisplayName,
		Kind:       kind,
		Covered:    covered,
		Stake:      stake,
	}
	r.bets = append(r.bets, bet)
	if r.phase == PhaseIdle {
		r.phase = PhaseBetting
	}
	return bet, p.Balance, nil
}

// StartRound abre a janela de apostas quando o room está Idle. Reenvio com
// a rodada já aberta é no-op e devolve started=false.
func (r *Room) StartRound() (time.Time, bool) {
	if r.phase != PhaseIdle {
		if r.deadline != nil {
			return *r.deadline, false
		}
		return time.Time{}, false
	}
	d := r.now().Add(r.window)
	r.deadline = &d
	r.phase = PhaseBetting
	return d, true
}

// SpinWheel resolve a rodada: deriva o número, liquida as apostas, credita
// vencedores, grava histórico e volta pra Idle. requesterID vazio indica
// disparo forçado (deadline ou superfície de mutação); caso contrário o
// solicitante precisa estar registrado.
//
// Única operação que muta history e produz SpinResult. Falha na derivação
// ou na liquidação aborta sem nenhum efeito parcial.
func (r *Room) SpinWheel(requesterID string) (*roulette.SpinResult, error) {
	if requesterID != "" {
		if _, ok := r.players[requesterID]; !ok {
			return nil, ErrUnknownPlayer
		}
	}
	if r.phase == PhaseResolving {
		// já resolvendo; ignora
		return nil, nil
	}
	if len(r.bets) == 0 {
		return nil, ErrInvalidPhase
	}

	r.phase = PhaseResolving

	ts := r.now()
	number, err := r.derive(ts, r.id, r.height, r.bets)
	if err != nil {
		r.phase = PhaseBetting
		return nil, err
	}
	wins, err := roulette.Settle(number, r.bets)
	if err != nil {
		r.phase = PhaseBetting
		return nil, err
	}

	// commit: créditos, histórico, limpeza, volta pra Idle
	for _, w := range wins {
		r.players[w.BettorID].Balance += w.Payout
	}
	res := &roulette.SpinResult{
		RoundID:   uuid.NewString(),
		Number:    number,
		Color:     roulette.ColorOf(number),
		Timestamp: ts,
		Height:    r.height,
		Bets:      r.bets,
		Winners:   wins,
	}
	r.lastResult = res
	r.history = append(r.history, number)
	if len(r.history) > r.historyCap {
		r.history = r.history[len(r.history)-r.historyCap:]
	}
	r.bets = nil
	r.deadline = nil
	r.height++
	r.phase = PhaseIdle
	return res, nil
}

// DeadlineElapsed informa se a janela de apostas venceu. Só o room decide a
// transição; o deadline é consultivo pra quem iniciou a rodada.
func (r *Room) DeadlineElapsed() bool {
	return r.phase == PhaseBetting && r.deadline != nil && !r.now().Before(*r.deadline)
}

// ExpireDeadline fecha uma janela vencida: resolve a rodada se houver
// apostas, senão só devolve o room pra Idle.
func (r *Room) ExpireDeadline() []Outgoing {
	if !r.DeadlineElapsed() {
		return nil
	}
	if len(r.bets) == 0 {
		r.deadline = nil
		r.phase = PhaseIdle
		return nil
	}
	res, err := r.SpinWheel("")
	if err != nil || res == nil {
		return nil
	}
	return r.broadcasts(res)
}

// broadcasts monta o fan-out de um resultado: um SpinResultBroadcast por
// jogador registrado, na ordem de registro, com payout e saldo absolutos.
func (r *Room) broadcasts(res *roulette.SpinResult) []Outgoing {
	payouts := make(map[string]uint64, len(res.Winners))
	for _, w := range res.Winners {
		payouts[w.BettorID] += w.Payout
	}
	out := make([]Outgoing, 0, len(r.order))
	for _, id := range r.order {
		p := r.players[id]
		out = append(out, Outgoing{
			PlayerID: id,
			Confirm: messages.SpinResultBroadcast{
				PlayerID:   id,
				Result:     *res,
				Payout:     payouts[id],
				NewBalance: p.Balance,
				StateSeq:   r.nextSeq(),
			},
		})
	}
	return out
}

// Handle despacha uma mensagem do protocolo pro handler correspondente e
// devolve as confirmações a emitir. O switch é exaustivo sobre a união
// fechada de requests; tipo desconhecido não chega aqui (barrado no
// decode do envelope).
//
// Falha de validação de register/bet viaja dentro da própria confirmação.
// Start e spin não têm portador de falha no protocolo; o erro volta só pro
// runtime logar (o estado do room fica intacto).
func (r *Room) Handle(req messages.Request) ([]Outgoing, error) {
	switch m := req.(type) {
	case messages.RegisterPlayerRequest:
		p, err := r.RegisterPlayer(m.PlayerID, m.DisplayName, m.InitialBalance)
		c := messages.PlayerRegisteredConfirm{
			PlayerID: m.PlayerID,
			StateSeq: r.nextSeq(),
			Success:  err == nil,
		}
		if err != nil {
			c.Error = err.Error()
		} else {
			c.DisplayName = p.DisplayName
			c.Balance = p.Balance
		}
		return []Outgoing{{PlayerID: m.PlayerID, Confirm: c}}, nil

	case messages.PlaceBetRequest:
		bet, balance, err := r.PlaceBet(m.PlayerID, m.Kind, m.Numbers, m.Stake)
		c := messages.BetPlacedConfirm{
			PlayerID:   m.PlayerID,
			NewBalance: balance,
			StateSeq:   r.nextSeq(),
			Success:    err == nil,
		}
		if err != nil {
			c.Error = err.Error()
		} else {
			c.Bet = &bet
		}
		return []Outgoing{{PlayerID: m.PlayerID, Confirm: c}}, nil

	case messages.StartRoundRequest:
		r.StartRound()
		return nil, nil

	case messages.SpinWheelRequest:
		res, err := r.SpinWheel(m.RequesterID)
		if err != nil || res == nil {
			return nil, err
		}
		return r.broadcasts(res), nil
	}
	return nil, nil
}
