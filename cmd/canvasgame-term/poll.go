package main

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// forwardEvents copies polled events into out until poll returns nil or ctx ends
// A full channel never blocks past cancellation
func forwardEvents(ctx context.Context, poll func() tcell.Event, out chan<- tcell.Event) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}
