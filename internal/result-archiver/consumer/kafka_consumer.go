package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/roulette-rooms-poc/internal/result-archiver/cache"
	"github.com/radieske/roulette-rooms-poc/internal/result-archiver/repository"
	"github.com/radieske/roulette-rooms-poc/pkg/contracts/messages"
)

// Archiver consome o tópico de confirms, filtra broadcasts de resultado e
// arquiva cada rodada uma única vez, com cache do resultado mais recente.
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa.
type Archiver struct {
	Log    *zap.Logger
	Reader *kafka.Reader
	Repo   *repository.PostgresRepo
	Cache  *cache.RedisCache

	OnConsumed func()       // métricas (counter++)
	OnArchived func()       // métricas
	OnSkipped  func()       // métricas (rodada já arquivada)
	OnError    func(string) // métricas por fase
}

// Run inicia o loop principal de consumo e arquivamento
func (a *Archiver) Run(ctx context.Context) error {
	for {
		m, err := a.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			a.Log.Warn("kafka read failed", zap.Error(err))
			if a.OnError != nil {
				a.OnError("read")
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if a.OnConsumed != nil {
			a.OnConsumed()
		}

		var env messages.ConfirmEnvelope
		if err := json.Unmarshal(m.Value, &env); err != nil {
			a.Log.Warn("invalid confirm message", zap.Error(err))
			if a.OnError != nil {
				a.OnError("decode")
			}
			continue
		}
		// só broadcasts de resultado interessam ao arquivo
		if env.Kind != messages.KindSpinResult {
			continue
		}
		c, err := env.Decode()
		if err != nil {
			a.Log.Warn("invalid spin result payload", zap.Error(err))
			if a.OnError != nil {
				a.OnError("decode")
			}
			continue
		}
		bc, ok := c.(messages.SpinResultBroadcast)
		if !ok {
			continue
		}

		inserted, err := a.Repo.InsertResult(ctx, env.RoomID, bc.Result)
		if err != nil {
			a.Log.Warn("db insert result failed", zap.Error(err))
			if a.OnError != nil {
				a.OnError("db_result")
			}
			continue
		}
		if !inserted {
			// fan-out do mesmo round ou redelivery; nada a fazer
			if a.OnSkipped != nil {
				a.OnSkipped()
			}
			continue
		}

		if err := a.Repo.InsertLedger(ctx, env.RoomID, bc.Result); err != nil {
			a.Log.Warn("db insert ledger failed", zap.Error(err))
			if a.OnError != nil {
				a.OnError("db_ledger")
			}
			continue
		}

		// Atualiza cache Redis com o resultado mais recente do room
		if err := a.Cache.SetLatest(ctx, env.RoomID, bc.Result); err != nil {
			a.Log.Warn("redis set failed", zap.Error(err))
			if a.OnError != nil {
				a.OnError("cache")
			}
			// não desfaz o arquivamento se falhar o cache
		}

		if a.OnArchived != nil {
			a.OnArchived()
		}
		a.Log.Info("round archived",
			zap.String("room_id", env.RoomID),
			zap.String("round_id", bc.Result.RoundID),
			zap.Int("number", bc.Result.Number),
			zap.Int("winners", len(bc.Result.Winners)),
		)
	}
}
