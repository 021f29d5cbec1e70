package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var errStreamingUnsupported = errors.New("streaming not supported")

// eventStream writes optimization progress as server-sent "data:" frames and
// flushes after each one so the client sees updates as they happen.
type eventStream struct {
	w     http.ResponseWriter
	flush func()
}

// openEventStream commits a 200 text/event-stream response on w.
func openEventStream(w http.ResponseWriter) (*eventStream, error) {
	f, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	f.Flush()
	return &eventStream{w: w, flush: f.Flush}, nil
}

// Send encodes v as JSON into one frame.
func (s *eventStream) Send(v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding stream event: %w", err)
	}
	return s.frame(payload)
}

// Done writes the [DONE] terminator clients wait for.
func (s *eventStream) Done() error { return s.frame([]byte("[DONE]")) }

func (s *eventStream) frame(payload []byte) error {
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	s.flush()
	return nil
}
