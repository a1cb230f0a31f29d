package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/courtside/sportsbuddy/internal/live"
	"github.com/courtside/sportsbuddy/internal/logging"
)

// streamFeed writes a live feed to the client as server-sent events. Each
// snapshot becomes one "data:" event. The stream ends when the client
// disconnects or the feed terminates.
func streamFeed[T any](w http.ResponseWriter, r *http.Request, feed *live.Feed[T]) {
	defer feed.Close()

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case snap, ok := <-feed.Snapshots():
			if !ok {
				if err := feed.Err(); err != nil {
					logging.Error("live feed terminated", map[string]interface{}{
						"path":  r.URL.Path,
						"error": err.Error(),
					})
				}
				return
			}
			payload, err := json.Marshal(snap)
			if err != nil {
				logging.Error("failed to encode snapshot", map[string]interface{}{
					"path":  r.URL.Path,
					"error": err.Error(),
				})
				return
			}
			if _, err := w.Write([]byte("data: ")); err != nil {
				return
			}
			if _, err := w.Write(payload); err != nil {
				return
			}
			if _, err := w.Write([]byte("\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
