package sse

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/debemdeboas/oremos-juntos/internal/config"
	"github.com/rs/zerolog"
)

// TopicFunc picks the topic of a request. An empty topic rejects it.
type TopicFunc func(r *http.Request) string

// Handler streams the events of one topic until the client goes away.
func Handler(clients *SSEClients, topicOf TopicFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := zerolog.Ctx(r.Context())

		topic := topicOf(r)
		if topic == "" {
			http.Error(w, "Unknown topic", http.StatusBadRequest)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set(config.HCType, "text/event-stream")
		w.Header().Set(config.HCacheControl, "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Del("X-Content-Type-Options")

		fmt.Fprintf(w, "event: connected\ndata: SSE connection established\n\n")
		flusher.Flush()

		client := NewClient(topic)
		clients.Add(client)
		l.Debug().Str("topic", topic).Msg("SSE client connected")

		defer func() {
			clients.Delete(client)
			l.Debug().Str("topic", topic).Msg("SSE client disconnected")
		}()

		for {
			select {
			case ev, ok := <-client.Msg:
				if !ok {
					return
				}
				writeEvent(w, ev)
				flusher.Flush()
			case <-r.Context().Done():
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, ev Event) {
	if ev.Name != "" {
		fmt.Fprintf(w, "event: %s\n", ev.Name)
	}
	for _, line := range strings.Split(ev.Data, "\n") {
		fmt.Fprintf(w, "data: %s\n", line)
	}
	fmt.Fprint(w, "\n")
}
