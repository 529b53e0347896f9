package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/roulette-rooms-poc/pkg/contracts/messages"
	"github.com/radieske/roulette-rooms-poc/pkg/roulette"
)

// sendSink acumula tudo que o actor despacharia pro Kafka.
type sendSink struct {
	mu  sync.Mutex
	out []Outgoing
}

func (s *sendSink) send(_ context.Context, _ string, out []Outgoing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out = append(s.out, out...)
}

func (s *sendSink) all() []Outgoing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Outgoing(nil), s.out...)
}

func startActor(t *testing.T, opts Options) (*Actor, *sendSink) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	sink := &sendSink{}
	a := NewActor(NewRoom("ROOM_ACTOR", opts), sink.send, zap.NewNop())
	go a.Run(ctx)
	return a, sink
}

func TestActorDoRoundTrip(t *testing.T) {
	a, sink := startActor(t, Options{})
	ctx := context.Background()

	out, err := a.Do(ctx, messages.RegisterPlayerRequest{PlayerID: "a", DisplayName: "Ana", InitialBalance: 300})
	require.NoError(t, err)
	require.Len(t, out, 1)

	c := out[0].Confirm.(messages.PlayerRegisteredConfirm)
	assert.True(t, c.Success)
	assert.Equal(t, uint64(300), c.Balance)

	// toda confirmação também sai pelo SendFunc, seja qual for a origem
	assert.Equal(t, out, sink.all())

	snap, err := a.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.PlayerCount)
	assert.Equal(t, PhaseIdle, snap.Phase)

	players, err := a.Players(ctx)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Ana", players[0].DisplayName)
}

// Apostas concorrentes contra um único saldo: o actor serializa tudo, então
// com saldo 50 e 100 apostas de stake 1 exatamente 50 entram e o saldo
// termina em zero, sem corrida.
func TestActorSerializesConcurrentBets(t *testing.T) {
	a, sink := startActor(t, Options{})
	ctx := context.Background()

	_, err := a.Do(ctx, messages.RegisterPlayerRequest{PlayerID: "a", DisplayName: "Ana", InitialBalance: 50})
	require.NoError(t, err)

	const attempts = 100
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, a.Enqueue(ctx, messages.PlaceBetRequest{
				PlayerID: "a",
				Kind:     roulette.Red,
				Stake:    1,
			}))
		}()
	}
	wg.Wait()

	betConfirms := func() (accepted, rejected int) {
		for _, o := range sink.all() {
			c, ok := o.Confirm.(messages.BetPlacedConfirm)
			if !ok {
				continue
			}
			if c.Success {
				accepted++
			} else {
				rejected++
			}
		}
		return
	}

	assert.Eventually(t, func() bool {
		a, r := betConfirms()
		return a+r == attempts
	}, 5*time.Second, 10*time.Millisecond)

	accepted, rejected := betConfirms()
	assert.Equal(t, 50, accepted)
	assert.Equal(t, 50, rejected)

	players, err := a.Players(ctx)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Zero(t, players[0].Balance)

	snap, err := a.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, snap.BetCount)
	assert.Equal(t, uint64(50), snap.StakedTotal)
}

func TestActorDoPropagatesRejection(t *testing.T) {
	a, _ := startActor(t, Options{})

	_, err := a.Do(context.Background(), messages.SpinWheelRequest{})
	assert.ErrorIs(t, err, ErrInvalidPhase)
}
