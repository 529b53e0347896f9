package game

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Manager mantém um Actor por room, criado sob demanda. Cada actor roda na
// própria goroutine até o contexto do manager encerrar.
type Manager struct {
	ctx  context.Context
	log  *zap.Logger
	send SendFunc
	opts Options

	mu    sync.Mutex
	rooms map[string]*Actor
}

func NewManager(ctx context.Context, log *zap.Logger, send SendFunc, opts Options) *Manager {
	return &Manager{
		ctx:   ctx,
		log:   log,
		send:  send,
		opts:  opts,
		rooms: make(map[string]*Actor),
	}
}

// Room devolve o actor da sala, criando e iniciando se necessário.
func (m *Manager) Room(id string) *Actor {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.rooms[id]; ok {
		return a
	}
	a := NewActor(NewRoom(id, m.opts), m.send, m.log)
	m.rooms[id] = a
	go a.Run(m.ctx)
	m.log.Info("room created", zap.String("room_id", id))
	return a
}
