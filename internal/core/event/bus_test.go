package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ping struct{ N int }
type pong struct{ S string }

func TestBus_DoubleBuffering(t *testing.T) {
	b := NewBus()

	Publish(b, ping{N: 1})
	assert.Empty(t, Drain[ping](b), "events are invisible until the next rotation")

	b.Rotate()
	got := Drain[ping](b)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].N)

	// Draining does not consume; rotation does.
	assert.Len(t, Drain[ping](b), 1)
	b.Rotate()
	assert.Empty(t, Drain[ping](b))
}

func TestBus_TypesAreIndependent(t *testing.T) {
	b := NewBus()
	Publish(b, ping{N: 7})
	Publish(b, pong{S: "hello"})
	b.Rotate()

	assert.Len(t, Drain[ping](b), 1)
	pongs := Drain[pong](b)
	require.Len(t, pongs, 1)
	assert.Equal(t, "hello", pongs[0].S)
}

func TestBus_PublishOrderPreserved(t *testing.T) {
	b := NewBus()
	for i := 0; i < 5; i++ {
		Publish(b, ping{N: i})
	}
	b.Rotate()

	got := Drain[ping](b)
	require.Len(t, got, 5)
	for i, ev := range got {
		assert.Equal(t, i, ev.N)
	}
}

// Systems in one stage may publish concurrently; none of it may be lost.
func TestBus_ConcurrentPublish(t *testing.T) {
	b := NewBus()
	const publishers, each = 8, 100

	var wg sync.WaitGroup
	wg.Add(publishers)
	for p := 0; p < publishers; p++ {
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				Publish(b, ping{N: i})
			}
		}()
	}
	wg.Wait()
	b.Rotate()
	assert.Len(t, Drain[ping](b), publishers*each)
}
