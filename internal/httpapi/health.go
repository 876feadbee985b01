package httpapi

import (
	"context"
	"net/http"
	"time"
)

func (a *api) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := a.db.PingContext(ctx); err != nil {
		a.log.Warn("health ping", "err", err)
		writeJSON(w, 503, map[string]any{"ok": false, "ts": time.Now().UTC().Format(time.RFC3339)})
		return
	}
	writeJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
}
