package notifier

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_SubscribeUnsubscribe(t *testing.T) {
	n := New()

	ch := n.Subscribe()
	require.NotNil(t, ch)
	assert.Equal(t, 1, n.Listeners())

	n.Unsubscribe(ch)
	assert.Equal(t, 0, n.Listeners())

	_, open := <-ch
	assert.False(t, open, "unsubscribe closes the channel")

	assert.NotPanics(t, func() { n.Unsubscribe(ch) })
}

func TestNotifier_Broadcast(t *testing.T) {
	n := New()

	pages := []chan struct{}{n.Subscribe(), n.Subscribe(), n.Subscribe()}
	defer func() {
		for _, ch := range pages {
			n.Unsubscribe(ch)
		}
	}()

	n.Broadcast()

	for i, ch := range pages {
		select {
		case <-ch:
		case <-time.After(100 * time.Millisecond):
			t.Errorf("page %d did not receive broadcast", i)
		}
	}
}

func TestNotifier_Broadcast_NonBlocking(t *testing.T) {
	n := New()

	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	ch <- struct{}{}

	done := make(chan struct{})
	go func() {
		n.Broadcast()
		n.Broadcast()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Broadcast blocked on full channel")
	}

	<-ch
	select {
	case <-ch:
		t.Error("pending pings are coalesced")
	default:
	}
}

func TestNotifier_Concurrent(t *testing.T) {
	n := New()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := n.Subscribe()
			n.Broadcast()
			n.Unsubscribe(ch)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, n.Listeners())
}
