package credits

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedger(t *testing.T) {
	t.Run("add and subtract", func(t *testing.T) {
		l := NewLedger(100)
		l.Add(50)
		assert.Equal(t, 150, l.Balance())

		assert.True(t, l.Subtract(150))
		assert.Zero(t, l.Balance())
	})

	t.Run("insufficient funds leaves balance unchanged", func(t *testing.T) {
		l := NewLedger(10)
		assert.False(t, l.Subtract(11))
		assert.Equal(t, 10, l.Balance())
	})

	t.Run("non-positive amounts are ignored", func(t *testing.T) {
		l := NewLedger(10)
		l.Add(-5)
		l.Add(0)
		assert.False(t, l.Subtract(0))
		assert.False(t, l.Subtract(-3))
		assert.Equal(t, 10, l.Balance())
	})

	t.Run("affordable", func(t *testing.T) {
		l := NewLedger(25)
		assert.True(t, l.Affordable(25))
		assert.False(t, l.Affordable(26))
		assert.False(t, l.Affordable(0))
	})

	t.Run("reset restores initial balance", func(t *testing.T) {
		l := NewLedger(5000)
		l.Subtract(4000)
		l.Reset()
		assert.Equal(t, 5000, l.Balance())
	})

	t.Run("refunding a debit is a round trip", func(t *testing.T) {
		l := NewLedger(300)
		assert.True(t, l.Subtract(75))
		l.Add(75)
		assert.Equal(t, 300, l.Balance())
	})

	t.Run("top up only below threshold", func(t *testing.T) {
		l := NewLedger(150)
		assert.False(t, l.TopUp(100, 1000))
		l.Subtract(100)
		assert.True(t, l.TopUp(100, 1000))
		assert.Equal(t, 1050, l.Balance())
	})
}

func TestLedgerConcurrentDebitsNeverOverdraw(t *testing.T) {
	l := NewLedger(1000)
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Subtract(30) {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 33, succeeded)
	assert.Equal(t, 10, l.Balance())
}
