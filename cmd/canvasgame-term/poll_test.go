package main

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardEventsStopsOnNil(t *testing.T) {
	queue := []tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone),
	}
	poll := func() tcell.Event {
		if len(queue) == 0 {
			return nil
		}
		ev := queue[0]
		queue = queue[1:]
		return ev
	}

	out := make(chan tcell.Event, 4)
	forwardEvents(context.Background(), poll, out)
	require.Len(t, out, 2)
	assert.Equal(t, 'a', (<-out).(*tcell.EventKey).Rune())
	assert.Equal(t, 'b', (<-out).(*tcell.EventKey).Rune())
}

func TestForwardEventsFullChannelCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	poll := func() tcell.Event {
		return tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	}

	// Nobody drains out, so the second send blocks until cancel
	out := make(chan tcell.Event, 1)
	done := make(chan struct{})
	go func() {
		forwardEvents(ctx, poll, out)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(out) == 1 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forwardEvents blocked after cancel")
	}
}
