package producer

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/roulette-rooms-poc/internal/room-service/game"
	"github.com/radieske/roulette-rooms-poc/pkg/contracts/messages"
)

// KafkaPublisher escreve confirmações Room -> Player no tópico de confirms.
type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(w *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: w}
}

// PublishConfirm embala e envia uma confirmação. Chave = room id: o
// fan-out de cada room fica em uma única partição. O protocolo não assume
// ordem de entrega mesmo assim.
func (p *KafkaPublisher) PublishConfirm(ctx context.Context, roomID string, out game.Outgoing) error {
	b, err := messages.EncodeConfirm(roomID, out.PlayerID, out.Confirm)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(roomID),
		Value: b,
	})
}
