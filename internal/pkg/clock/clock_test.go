package clock_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-forms/internal/pkg/clock"
)

func TestTickCounter(t *testing.T) {
	c := clock.NewTickCounter()
	assert.Equal(t, int64(0), c.Current())

	assert.Equal(t, int64(1), c.Advance())
	assert.Equal(t, int64(11), c.AdvanceBy(10))
	assert.Equal(t, int64(11), c.AdvanceBy(0))
	assert.Equal(t, int64(11), c.AdvanceBy(-3))
	assert.Equal(t, int64(11), c.Current())
}

func TestTickCounterConcurrentReads(t *testing.T) {
	c := clock.NewTickCounter()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = c.Current()
			}
		}()
	}
	for i := 0; i < 100; i++ {
		c.Advance()
	}
	wg.Wait()

	assert.Equal(t, int64(100), c.Current())
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	c := &clock.Fixed{At: at}
	assert.Equal(t, at, c.Now())
	assert.False(t, clock.New().Now().IsZero())
}
