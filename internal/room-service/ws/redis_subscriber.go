package ws

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	ctopics "github.com/radieske/roulette-rooms-poc/pkg/contracts/topics"
)

// StartRedisSubscriber inicia uma goroutine que escuta o canal Redis Pub/Sub
// de resultados e repassa cada resolução recebida para os clientes
// WebSocket inscritos no room via Hub
//
// Funcionamento:
// - Recebe mensagens JSON do canal Redis
// - Desserializa para ResultUpdate
// - Chama hub.Broadcast para enviar aos clientes conectados
func StartRedisSubscriber(ctx context.Context, r *redis.Client, hub *Hub, log *zap.Logger) {
	sub := r.Subscribe(ctx, ctopics.SpinResultsChannel)
	ch := sub.Channel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close() // encerra a inscrição ao finalizar o contexto
				return
			case msg := <-ch:
				if msg == nil {
					continue
				}
				var upd ResultUpdate
				if err := json.Unmarshal([]byte(msg.Payload), &upd); err != nil {
					log.Warn("ws subscriber unmarshal error", zap.Error(err))
					continue
				}
				hub.Broadcast(upd) // envia o resultado para os clientes inscritos
			}
		}
	}()
}
