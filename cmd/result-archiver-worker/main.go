package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/roulette-rooms-poc/internal/result-archiver/cache"
	"github.com/radieske/roulette-rooms-poc/internal/result-archiver/consumer"
	"github.com/radieske/roulette-rooms-poc/internal/result-archiver/repository"
	sharedcache "github.com/radieske/roulette-rooms-poc/internal/shared/cache"
	"github.com/radieske/roulette-rooms-poc/internal/shared/config"
	"github.com/radieske/roulette-rooms-poc/internal/shared/db"
	sharedkafka "github.com/radieske/roulette-rooms-poc/internal/shared/kafka"
	"github.com/radieske/roulette-rooms-poc/internal/shared/logger"
	"github.com/radieske/roulette-rooms-poc/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Inicializa dependências: Postgres e Redis
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	// Cache do último resultado por room e repositório de arquivamento
	ttl := 10 * time.Minute
	rcache := cache.NewRedisCache(redisClient, ttl)
	repo := repository.NewPostgresRepo(pg)

	// Configura o consumer Kafka (consumer group result-archiver)
	reader := sharedkafka.NewReader(cfg.KafkaBrokers, cfg.TopicRoomConfirms, "result-archiver")
	defer reader.Close()

	// Métricas Prometheus para monitoramento do arquivamento
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "archiver_messages_consumed_total", Help: "mensagens consumidas"})
	archived := prometheus.NewCounter(prometheus.CounterOpts{Name: "archiver_rounds_archived_total", Help: "rodadas arquivadas"})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{Name: "archiver_rounds_skipped_total", Help: "duplicatas ignoradas"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "archiver_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, archived, skipped, errorsBy)

	arch := &consumer.Archiver{
		Log:        log,
		Reader:     reader,
		Repo:       repo,
		Cache:      rcache,
		OnConsumed: func() { consumed.Inc() },
		OnArchived: func() { archived.Inc() },
		OnSkipped:  func() { skipped.Inc() },
		OnError:    func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	// Servidor HTTP para métricas e health check
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("result-archiver started", zap.String("consume", cfg.TopicRoomConfirms))
	if err := arch.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("archiver stopped with error", zap.Error(err))
	}
	log.Info("result-archiver stopped")
}
