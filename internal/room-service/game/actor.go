package game

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/roulette-rooms-poc/pkg/contracts/messages"
)

// SendFunc entrega as confirmações produzidas por um handler (Kafka em
// produção; um slice nos testes).
type SendFunc func(ctx context.Context, roomID string, out []Outgoing)

// Actor executa a máquina de estados de um room em uma única goroutine:
// um job por vez, até o fim, sem suspensão no meio do handler. É a única
// porta de entrada pro Room; nada mais toca o estado.
type Actor struct {
	room  *Room
	inbox chan func(*Room)
	send  SendFunc
	log   *zap.Logger
}

const inboxSize = 256

// tickInterval do relógio interno que observa o deadline de apostas.
const tickInterval = time.Second

func NewActor(room *Room, send SendFunc, log *zap.Logger) *Actor {
	return &Actor{
		room:  room,
		inbox: make(chan func(*Room), inboxSize),
		send:  send,
		log:   log.With(zap.String("room_id", room.ID())),
	}
}

// Run drena o inbox até o contexto encerrar. Também observa o deadline da
// janela de apostas: vencido, o próprio room decide fechar a rodada.
func (a *Actor) Run(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-a.inbox:
			fn(a.room)
		case <-ticker.C:
			if out := a.room.ExpireDeadline(); len(out) > 0 {
				a.log.Info("betting window expired, round resolved",
					zap.Int("broadcasts", len(out)))
				a.send(ctx, a.room.ID(), out)
			}
		}
	}
}

// Enqueue agenda uma mensagem do protocolo sem esperar o resultado
// (caminho Kafka, fire-and-forget). As confirmações saem pelo SendFunc.
func (a *Actor) Enqueue(ctx context.Context, req messages.Request) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case a.inbox <- func(r *Room) {
		out, err := r.Handle(req)
		if err != nil {
			a.log.Warn("request rejected", zap.Error(err))
		}
		if len(out) > 0 {
			a.send(ctx, r.ID(), out)
		}
	}:
		return nil
	}
}

// Do agenda uma mensagem e espera as confirmações (caminho HTTP síncrono).
// As confirmações também saem pelo SendFunc, mantendo o fan-out Kafka
// consistente seja qual for a origem.
func (a *Actor) Do(ctx context.Context, req messages.Request) ([]Outgoing, error) {
	type reply struct {
		out []Outgoing
		err error
	}
	ch := make(chan reply, 1)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case a.inbox <- func(r *Room) {
		out, err := r.Handle(req)
		if len(out) > 0 {
			a.send(ctx, r.ID(), out)
		}
		ch <- reply{out: out, err: err}
	}:
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case rep := <-ch:
		return rep.out, rep.err
	}
}

// Snapshot consulta o estado de rodada dentro do turno do actor.
func (a *Actor) Snapshot(ctx context.Context) (Snapshot, error) {
	ch := make(chan Snapshot, 1)
	select {
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case a.inbox <- func(r *Room) { ch <- r.Snapshot() }:
	}
	select {
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case s := <-ch:
		return s, nil
	}
}

// Players consulta o registro de jogadores dentro do turno do actor.
func (a *Actor) Players(ctx context.Context) ([]Player, error) {
	ch := make(chan []Player, 1)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case a.inbox <- func(r *Room) { ch <- r.RegisteredPlayers() }:
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case ps := <-ch:
		return ps, nil
	}
}
