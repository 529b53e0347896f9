package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/roulette-rooms-poc/internal/room-service/game"
	sharedkafka "github.com/radieske/roulette-rooms-poc/internal/shared/kafka"
	"github.com/radieske/roulette-rooms-poc/pkg/contracts/messages"
)

// Consumer consome requests Player -> Room do Kafka e roteia cada uma pro
// actor da sala. Payload malformado vai pra DLQ, nunca derruba o loop.
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa.
type Consumer struct {
	Log    *zap.Logger
	Reader *kafka.Reader
	Rooms  *game.Manager
	DLQ    *kafka.Writer // opcional

	OnConsumed func()       // métricas (counter++)
	OnRouted   func()       // métricas
	OnError    func(string) // métricas por fase
}

// Run inicia o loop principal de consumo e roteamento das mensagens Kafka
func (c *Consumer) Run(ctx context.Context) error {
	for {
		m, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			c.Log.Warn("kafka read failed", zap.Error(err))
			if c.OnError != nil {
				c.OnError("read")
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if c.OnConsumed != nil {
			c.OnConsumed()
		}

		var env messages.RequestEnvelope
		if err := json.Unmarshal(m.Value, &env); err != nil {
			c.deadLetter(ctx, m.Value, "unmarshal", err)
			continue
		}
		if env.RoomID == "" {
			c.deadLetter(ctx, m.Value, "no_room", nil)
			continue
		}
		req, err := env.Decode()
		if err != nil {
			// kind desconhecido ou payload inválido
			c.deadLetter(ctx, m.Value, "decode", err)
			continue
		}

		if err := c.Rooms.Room(env.RoomID).Enqueue(ctx, req); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.Log.Warn("enqueue failed", zap.String("room_id", env.RoomID), zap.Error(err))
			if c.OnError != nil {
				c.OnError("enqueue")
			}
			continue
		}
		if c.OnRouted != nil {
			c.OnRouted()
		}
	}
}

func (c *Consumer) deadLetter(ctx context.Context, value []byte, stage string, cause error) {
	c.Log.Warn("invalid request message", zap.String("stage", stage), zap.Error(cause))
	if c.OnError != nil {
		c.OnError(stage)
	}
	if c.DLQ == nil {
		return
	}
	if err := sharedkafka.WriteJSON(ctx, c.DLQ, stage, value); err != nil {
		c.Log.Error("dlq write failed", zap.Error(err))
	}
}
