package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	rconsumer "github.com/radieske/roulette-rooms-poc/internal/room-service/consumer"
	"github.com/radieske/roulette-rooms-poc/internal/room-service/game"
	rhttp "github.com/radieske/roulette-rooms-poc/internal/room-service/http"
	"github.com/radieske/roulette-rooms-poc/internal/room-service/producer"
	"github.com/radieske/roulette-rooms-poc/internal/room-service/pubsub"
	"github.com/radieske/roulette-rooms-poc/internal/room-service/repo"
	"github.com/radieske/roulette-rooms-poc/internal/room-service/ws"
	sharedcache "github.com/radieske/roulette-rooms-poc/internal/shared/cache"
	"github.com/radieske/roulette-rooms-poc/internal/shared/config"
	"github.com/radieske/roulette-rooms-poc/internal/shared/db"
	sharedkafka "github.com/radieske/roulette-rooms-poc/internal/shared/kafka"
	"github.com/radieske/roulette-rooms-poc/internal/shared/logger"
	"github.com/radieske/roulette-rooms-poc/internal/shared/metrics"
	"github.com/radieske/roulette-rooms-poc/pkg/contracts/messages"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Postgres: arquivo de jogadores e rodadas
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()

	// Redis: canal Pub/Sub do fan-out WebSocket
	rdb, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	// Kafka: requests entram, confirms saem
	confirmsWriter := sharedkafka.NewWriter(cfg.KafkaBrokers, cfg.TopicRoomConfirms)
	defer confirmsWriter.Close()
	dlqWriter := sharedkafka.NewWriter(cfg.KafkaBrokers, cfg.TopicRoomRequestsDLQ)
	defer dlqWriter.Close()
	reader := sharedkafka.NewReader(cfg.KafkaBrokers, cfg.TopicRoomRequests, "room-service")
	defer reader.Close()

	publisher := producer.NewKafkaPublisher(confirmsWriter)
	broadcaster := pubsub.NewRedisBroadcaster(rdb)
	repository := repo.NewPostgres(pg)

	// Métricas Prometheus para o fluxo de mensagens do room
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "room_requests_consumed_total", Help: "requests consumidas do Kafka"})
	routed := prometheus.NewCounter(prometheus.CounterOpts{Name: "room_requests_routed_total", Help: "requests roteadas pro actor"})
	confirms := prometheus.NewCounter(prometheus.CounterOpts{Name: "room_confirms_published_total", Help: "confirms publicadas"})
	spins := prometheus.NewCounter(prometheus.CounterOpts{Name: "room_spins_resolved_total", Help: "rodadas resolvidas"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "room_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, routed, confirms, spins, errorsBy)

	// send entrega tudo que um handler emitiu: confirms no Kafka e, quando a
	// rodada resolve, o resultado no Redis Pub/Sub e no arquivo Postgres.
	send := func(ctx context.Context, roomID string, out []game.Outgoing) {
		var resultDone bool
		for _, o := range out {
			if err := publisher.PublishConfirm(ctx, roomID, o); err != nil {
				log.Warn("confirm publish failed", zap.String("room_id", roomID), zap.Error(err))
				errorsBy.WithLabelValues("publish").Inc()
			} else {
				confirms.Inc()
			}

			switch c := o.Confirm.(type) {
			case messages.PlayerRegisteredConfirm:
				if c.Success {
					if err := repository.UpsertPlayer(ctx, roomID, game.Player{
						ID: c.PlayerID, DisplayName: c.DisplayName, Balance: c.Balance,
					}); err != nil {
						log.Warn("player archive failed", zap.Error(err))
						errorsBy.WithLabelValues("db_player").Inc()
					}
				}
			case messages.SpinResultBroadcast:
				if resultDone {
					continue // fan-out carrega o mesmo resultado em todos os envelopes
				}
				resultDone = true
				spins.Inc()

				if err := repository.InsertSpin(ctx, roomID, c.Result); err != nil {
					log.Warn("spin archive failed", zap.Error(err))
					errorsBy.WithLabelValues("db_spin").Inc()
				}

				msg := pubsub.WSUpdate{RoomID: roomID, Payload: c.Result}
				b, _ := json.Marshal(msg)
				pubCtx, pubCancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
				if err := broadcaster.Publish(pubCtx, cfg.RedisPubSubChannel, b); err != nil {
					log.Warn("ws broadcast publish failed", zap.Error(err))
					errorsBy.WithLabelValues("pubsub").Inc()
				}
				pubCancel()
			}
		}
	}

	rooms := game.NewManager(ctx, log, send, game.Options{
		BettingWindow: cfg.BettingWindow,
		HistoryCap:    cfg.HistoryCap,
	})

	// Consumer Kafka: protocolo Player -> Room
	cons := &rconsumer.Consumer{
		Log:        log,
		Reader:     reader,
		Rooms:      rooms,
		DLQ:        dlqWriter,
		OnConsumed: func() { consumed.Inc() },
		OnRouted:   func() { routed.Inc() },
		OnError:    func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}
	go func() {
		if err := cons.Run(ctx); err != nil && ctx.Err() == nil {
			log.Fatal("consumer stopped with error", zap.Error(err))
		}
	}()

	// WebSocket: observadores de resultado por room
	hub := ws.NewHub(func(r *http.Request) bool { return true })
	ws.StartRedisSubscriber(ctx, rdb, hub, log)

	// HTTP público: mutação + consulta
	api := &rhttp.API{Log: log, Rooms: rooms}
	mux := http.NewServeMux()
	mux.Handle("/", api.Router())
	mux.HandleFunc("/ws", hub.HandleWS)
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: mux,
	}

	// metrics/health
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return rdb.Ping(ctx).Err()
	})

	go func() {
		<-ctx.Done()
		shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shCancel()
		_ = apiSrv.Shutdown(shCtx)
	}()

	log.Info("room-service listening",
		zap.String("addr", fmt.Sprintf(":%s", cfg.HTTPPort)),
		zap.String("consume", cfg.TopicRoomRequests),
		zap.String("publish", cfg.TopicRoomConfirms),
	)
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
	log.Info("room-service stopped")
}
