package httpapi

import (
	"net/http"

	"retroboard/internal/collab"
	"retroboard/internal/metrics"
)

func (a *api) handleFeed(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		writeError(w, 400, "user_id is required")
		return
	}
	uid, err := parseID(raw)
	if err != nil {
		writeError(w, 400, "bad user_id")
		return
	}
	items, err := a.engine.FeedForUser(r.Context(), uid)
	if err != nil {
		a.fail(w, "feed", err)
		return
	}
	if len(items) == 0 {
		writeError(w, 404, "no posts found")
		return
	}
	writeJSON(w, 200, items)
}

func (a *api) handleAddPost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text    string  `json:"post_text"`
		UserID  flexID  `json:"user_id"`
		Picture string  `json:"post_picture"`
		Date    string  `json:"post_date"`
		Time    string  `json:"post_time"`
		BoardID *flexID `json:"board_id"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	en := collab.Entry{
		AuthorID: int64(req.UserID),
		Text:     req.Text,
		Picture:  req.Picture,
		Date:     req.Date,
		Time:     req.Time,
	}
	if req.BoardID != nil && *req.BoardID != 0 {
		id := int64(*req.BoardID)
		en.BoardID = &id
	}
	p, err := a.engine.CreatePost(r.Context(), en)
	if err != nil {
		a.fail(w, "create post", err)
		return
	}
	metrics.PostsCreated.Inc()
	writeJSON(w, 201, p)
}

func (a *api) handleIncrementViews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	views, err := a.engine.IncrementViews(r.Context(), id)
	if err != nil {
		a.fail(w, "increment views", err)
		return
	}
	writeJSON(w, 200, map[string]any{"message": "views updated", "post_views": views})
}
