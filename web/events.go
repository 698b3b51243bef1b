package web

import (
	"fmt"
	"net/http"
	"sync"
)

// eventBuffer is how many undelivered events a subscriber may queue before
// further events are dropped for it.
const eventBuffer = 10

// hub fans out page events to server-sent event subscribers.
type hub struct {
	mu   sync.Mutex
	subs map[chan string]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[chan string]struct{})}
}

func (h *hub) subscribe() chan string {
	ch := make(chan string, eventBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *hub) unsubscribe(ch chan string) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

// publish delivers event to every subscriber without blocking. A subscriber
// with a full queue misses it.
func (h *hub) publish(event string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// serveEvents streams hub events as text/event-stream until the client goes
// away. The first event is always "connected".
func (h *hub) serveEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	send := func(event string) {
		_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
		flusher.Flush()
	}

	send("connected")
	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-ch:
			send(event)
		}
	}
}
