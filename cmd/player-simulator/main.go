package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/roulette-rooms-poc/internal/player"
	"github.com/radieske/roulette-rooms-poc/internal/shared/config"
	sharedkafka "github.com/radieske/roulette-rooms-poc/internal/shared/kafka"
	"github.com/radieske/roulette-rooms-poc/internal/shared/logger"
	"github.com/radieske/roulette-rooms-poc/internal/shared/metrics"
	"github.com/radieske/roulette-rooms-poc/pkg/contracts/messages"
	"github.com/radieske/roulette-rooms-poc/pkg/roulette"
)

// Catálogo fixo de salas e apelidos simulados
var (
	roomCatalog = []string{"ROOM_001", "ROOM_002"}
	nameCatalog = []string{"Ana", "Bruno", "Clara", "Diego", "Elisa", "Fábio"}

	// Tipos de aposta sorteados pelo simulador
	kindCatalog = []roulette.Kind{
		roulette.Straight, roulette.Red, roulette.Black,
		roulette.Even, roulette.Odd, roulette.Low, roulette.High,
		roulette.Dozen1, roulette.Dozen2, roulette.Dozen3,
		roulette.Column1, roulette.Column2, roulette.Column3,
	}

	// Métricas Prometheus do simulador
	requestsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sim_requests_sent_total",
		Help: "Requests enviadas por tipo",
	}, []string{"kind"})
	confirmsApplied = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_confirms_applied_total",
		Help: "Confirms aplicadas nos espelhos locais",
	})
	payoutsReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_payouts_received_total",
		Help: "Broadcasts com payout > 0",
	})
)

const initialGrant = 1000

// simPlayer amarra o espelho local ao room da simulação
type simPlayer struct {
	state *player.State
}

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	prometheus.MustRegister(requestsSent, confirmsApplied, payoutsReceived)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	writer := sharedkafka.NewWriter(cfg.KafkaBrokers, cfg.TopicRoomRequests)
	defer writer.Close()
	reader := sharedkafka.NewReader(cfg.KafkaBrokers, cfg.TopicRoomConfirms, "player-simulator")
	defer reader.Close()

	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error { return nil })

	// Três jogadores por sala, cada um com seu espelho local
	var mu sync.Mutex
	players := make(map[string]*simPlayer) // roomID|playerID -> sim
	for _, room := range roomCatalog {
		for i := 0; i < 3; i++ {
			id := fmt.Sprintf("%s-P%02d", room, i+1)
			name := nameCatalog[rand.Intn(len(nameCatalog))]
			players[room+"|"+id] = &simPlayer{state: player.New(room, id, name)}
		}
	}

	send := func(roomID string, req messages.Request, kind string) {
		b, err := messages.EncodeRequest(roomID, req)
		if err != nil {
			log.Error("encode request", zap.Error(err))
			return
		}
		if err := sharedkafka.WriteJSON(ctx, writer, roomID, b); err != nil {
			log.Warn("kafka write failed", zap.Error(err))
			return
		}
		requestsSent.WithLabelValues(kind).Inc()
	}

	// Registra todo mundo antes do loop de apostas
	mu.Lock()
	for _, sp := range players {
		send(sp.state.RoomID, sp.state.RegisterRequest(initialGrant), "register_player")
	}
	mu.Unlock()

	// Loop de leitura: aplica cada confirm no espelho do destinatário
	go func() {
		for {
			_, value, err := sharedkafka.ReadNext(ctx, reader)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Warn("kafka read", zap.Error(err))
				time.Sleep(time.Second)
				continue
			}
			var env messages.ConfirmEnvelope
			if err := json.Unmarshal(value, &env); err != nil {
				log.Warn("unmarshal confirm", zap.Error(err))
				continue
			}
			c, err := env.Decode()
			if err != nil {
				log.Warn("decode confirm", zap.Error(err))
				continue
			}

			mu.Lock()
			sp, ok := players[env.RoomID+"|"+env.PlayerID]
			if ok {
				sp.state.Apply(c)
				confirmsApplied.Inc()
				if bc, isResult := c.(messages.SpinResultBroadcast); isResult {
					if bc.Payout > 0 {
						payoutsReceived.Inc()
					}
					log.Info("round applied",
						zap.String("room_id", env.RoomID),
						zap.String("player_id", env.PlayerID),
						zap.Int("number", bc.Result.Number),
						zap.Uint64("payout", bc.Payout),
						zap.Uint64("balance", sp.state.Balance),
					)
				}
			}
			mu.Unlock()
		}
	}()

	log.Info("player-simulator started",
		zap.Int("players", len(players)),
		zap.Strings("rooms", roomCatalog),
	)

	// Loop principal: apostas aleatórias válidas e spins ocasionais
	ticker := time.NewTicker(1500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("player-simulator stopped")
			return
		case <-ticker.C:
		}

		mu.Lock()
		var pool []*simPlayer
		for _, sp := range players {
			if sp.state.Registered && sp.state.Balance > 0 {
				pool = append(pool, sp)
			}
		}
		if len(pool) == 0 {
			mu.Unlock()
			continue
		}
		sp := pool[rand.Intn(len(pool))]
		st := sp.state

		switch r := rand.Intn(10); {
		case r < 7:
			// aposta válida com stake entre 1 e 10% do saldo
			kind := kindCatalog[rand.Intn(len(kindCatalog))]
			var numbers []int
			if kind == roulette.Straight {
				numbers = []int{rand.Intn(37)}
			}
			stake := uint64(1 + rand.Int63n(int64(st.Balance/10+1)))
			send(st.RoomID, st.BetRequest(kind, numbers, stake), "place_bet")
		case r < 9:
			send(st.RoomID, st.SpinRequest(), "spin_wheel")
		default:
			send(st.RoomID, st.StartRequest(), "start_round")
		}
		mu.Unlock()
	}
}
