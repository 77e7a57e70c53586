package listing_test

import (
	"sync"
	"testing"

	"github.com/maxviazov/installment-console/internal/listing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSequencer_OnlyLatestWins(t *testing.T) {
	var s listing.Sequencer
	first := s.Next()
	second := s.Next()

	assert.False(t, s.Latest(first))
	assert.True(t, s.Latest(second))
	assert.Greater(t, uint64(second), uint64(first))
}

func TestTracker_DiscardsStaleResponse(t *testing.T) {
	var tr listing.Tracker

	slow := tr.Begin()
	fast := tr.Begin()

	assert.True(t, tr.Complete(fast, listing.View{Total: 2}))
	assert.False(t, tr.Complete(slow, listing.View{Total: 1}), "older response must not clobber")

	v, ok := tr.Current()
	assert.True(t, ok)
	assert.Equal(t, 2, v.Total)
}

func TestTracker_EmptyUntilFirstAccept(t *testing.T) {
	var tr listing.Tracker
	_, ok := tr.Current()
	assert.False(t, ok)
}

func TestTracker_ConcurrentIssue(t *testing.T) {
	var tr listing.Tracker
	var wg sync.WaitGroup
	tickets := make(chan listing.Ticket, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tickets <- tr.Begin()
		}()
	}
	wg.Wait()
	close(tickets)

	seen := map[listing.Ticket]bool{}
	accepted := 0
	for tk := range tickets {
		assert.False(t, seen[tk], "duplicate ticket %d", tk)
		seen[tk] = true
		if tr.Complete(tk, listing.View{}) {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)
}
