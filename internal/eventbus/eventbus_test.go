package eventbus

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type ping struct{ N int }

type pong struct{ N int }

func TestEmitDispatchesByType(t *testing.T) {
	b := New()
	var pings, pongs []int
	On(b, func(_ context.Context, e ping) { pings = append(pings, e.N) })
	On(b, func(_ context.Context, e pong) { pongs = append(pongs, e.N) })

	Emit(context.Background(), b, ping{N: 1})
	Emit(context.Background(), b, pong{N: 2})
	Emit(context.Background(), b, ping{N: 3})

	require.Equal(t, []int{1, 3}, pings)
	require.Equal(t, []int{2}, pongs)
}

func TestUnsubscribeRemovesOnlyItsHandler(t *testing.T) {
	b := New()
	var got []string
	first := On(b, func(_ context.Context, e ping) { got = append(got, "first") })
	On(b, func(_ context.Context, e ping) { got = append(got, "second") })

	first()
	first()
	Emit(context.Background(), b, ping{})
	require.Equal(t, []string{"second"}, got)
}

func TestEmitPassesContext(t *testing.T) {
	type key struct{}
	b := New()
	var seen any
	On(b, func(ctx context.Context, _ ping) { seen = ctx.Value(key{}) })
	Emit(context.WithValue(context.Background(), key{}, "run"), b, ping{})
	require.Equal(t, "run", seen)
}

func TestGlobalBus(t *testing.T) {
	Use(nil)
	Publish(context.Background(), ping{N: 1})
	unsubscribe := Subscribe(func(context.Context, ping) { t.Fatal("no bus installed") })
	unsubscribe()

	Use(New())
	defer Use(nil)
	var mu sync.Mutex
	total := 0
	Subscribe(func(_ context.Context, e ping) {
		mu.Lock()
		total += e.N
		mu.Unlock()
	})
	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Publish(context.Background(), ping{N: n})
		}(i)
	}
	wg.Wait()
	require.Equal(t, 55, total)
}
