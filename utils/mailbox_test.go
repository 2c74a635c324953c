package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailBox(t *testing.T) {
	{ // Every thread sends to every other, receipt order differs from send order
		const NP = 4
		var (
			mb = NewMailBox[[]float64](NP, NP*2)
			wg sync.WaitGroup
		)
		got := make([][]float64, NP)
		for n := 0; n < NP; n++ {
			wg.Add(1)
			go func(my int) {
				defer wg.Done()
				for target := 0; target < NP; target++ {
					if target != my {
						mb.PostMessage(my, target, 0, 1, []float64{float64(my)})
					}
				}
				for from := NP - 1; from >= 0; from-- {
					if from == my {
						continue
					}
					msg, ok := mb.ReceiveMessage(my, from, 0, 1)
					if ok {
						got[my] = append(got[my], msg[0])
					}
				}
			}(n)
		}
		wg.Wait()
		for my := 0; my < NP; my++ {
			var want []float64
			for from := NP - 1; from >= 0; from-- {
				if from != my {
					want = append(want, float64(from))
				}
			}
			assert.Equal(t, want, got[my])
			assert.Equal(t, 0, mb.Pending(my))
		}
	}
	{ // Tags and sequence numbers select among letters from one sender
		mb := NewMailBox[int](2, 4)
		require.True(t, mb.PostMessage(0, 1, 1, 1, 11))
		require.True(t, mb.PostMessage(0, 1, 0, 2, 2))
		require.True(t, mb.PostMessage(0, 1, 0, 1, 1))
		v, ok := mb.ReceiveMessage(1, 0, 0, 1)
		require.True(t, ok)
		assert.Equal(t, 1, v)
		assert.Equal(t, 2, mb.Pending(1))
		v, _ = mb.ReceiveMessage(1, 0, 1, 1)
		assert.Equal(t, 11, v)
		v, _ = mb.ReceiveMessage(1, 0, 0, 2)
		assert.Equal(t, 2, v)
		assert.Equal(t, 0, mb.Pending(1))
	}
	{ // Close releases blocked threads
		mb := NewMailBox[int](2, 0)
		done := make(chan bool)
		go func() {
			_, ok := mb.ReceiveMessage(0, 1, 0, 1)
			done <- ok
		}()
		mb.Close()
		assert.False(t, <-done)
		mb.Close()
		assert.False(t, mb.PostMessage(1, 0, 0, 1, 0))
		assert.Panics(t, func() { mb.PostMessage(0, 2, 0, 1, 0) })
	}
}
