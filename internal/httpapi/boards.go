package httpapi

import (
	"net/http"

	"retroboard/internal/metrics"
)

func (a *api) handleColors(w http.ResponseWriter, r *http.Request) {
	cs, err := a.engine.Colors(r.Context())
	if err != nil {
		a.fail(w, "list colors", err)
		return
	}
	writeJSON(w, 200, cs)
}

func (a *api) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string   `json:"board_name"`
		Color string   `json:"board_colour"`
		Users []flexID `json:"board_users"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	ids := make([]int64, len(req.Users))
	for i, u := range req.Users {
		ids[i] = int64(u)
	}
	id, err := a.engine.CreateBoard(r.Context(), req.Name, req.Color, ids)
	if err != nil {
		a.fail(w, "create board", err)
		return
	}
	metrics.BoardsCreated.Inc()
	writeJSON(w, 201, map[string]any{"board_id": id, "message": "board created"})
}

func (a *api) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "boardID")
	if !ok {
		return
	}
	v, err := a.engine.GetBoard(r.Context(), id)
	if err != nil {
		a.fail(w, "get board", err)
		return
	}
	writeJSON(w, 200, v)
}

func (a *api) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "boardID")
	if !ok {
		return
	}
	if err := a.engine.DeleteBoard(r.Context(), id); err != nil {
		a.fail(w, "delete board", err)
		return
	}
	writeJSON(w, 200, map[string]any{"message": "board deleted"})
}

type boardSummary struct {
	ID    int64  `json:"board_id"`
	Name  string `json:"board_name"`
	Color string `json:"board_colour"`
}

func (a *api) handleBoardsForUser(w http.ResponseWriter, r *http.Request) {
	uid, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	bs, err := a.engine.BoardsForUser(r.Context(), uid)
	if err != nil {
		a.fail(w, "boards for user", err)
		return
	}
	if len(bs) == 0 {
		writeError(w, 404, "no boards found")
		return
	}
	out := make([]boardSummary, 0, len(bs))
	for _, b := range bs {
		out = append(out, boardSummary{ID: b.ID, Name: b.Name, Color: b.Color})
	}
	writeJSON(w, 200, out)
}

func (a *api) handleListMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "boardID")
	if !ok {
		return
	}
	ms, err := a.engine.ListMembers(r.Context(), id)
	if err != nil {
		a.fail(w, "list members", err)
		return
	}
	writeJSON(w, 200, ms)
}

type membershipRequest struct {
	BoardID flexID `json:"board_id"`
	UserID  flexID `json:"user_id"`
}

func (a *api) handleLeave(w http.ResponseWriter, r *http.Request) {
	var req membershipRequest
	if err := readJSON(w, r, &req); err != nil || req.BoardID == 0 || req.UserID == 0 {
		writeError(w, 400, "board_id and user_id are required")
		return
	}
	if err := a.engine.Leave(r.Context(), int64(req.BoardID), int64(req.UserID)); err != nil {
		a.fail(w, "leave board", err)
		return
	}
	writeJSON(w, 200, map[string]any{"message": "left the board"})
}

func (a *api) handleKick(w http.ResponseWriter, r *http.Request) {
	var req membershipRequest
	if err := readJSON(w, r, &req); err != nil || req.BoardID == 0 || req.UserID == 0 {
		writeError(w, 400, "board_id and user_id are required")
		return
	}
	if err := a.engine.Kick(r.Context(), int64(req.BoardID), int64(req.UserID)); err != nil {
		a.fail(w, "kick from board", err)
		return
	}
	writeJSON(w, 200, map[string]any{"message": "user removed from the board"})
}

func (a *api) handleAddColumn(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "boardID")
	if !ok {
		return
	}
	var req struct {
		Name   string   `json:"column_name"`
		Color  colorRef `json:"column_colour"`
		UserID flexID   `json:"user_id"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	colorID := req.Color.id
	if colorID == 0 {
		var err error
		if colorID, err = a.engine.ResolveColor(r.Context(), req.Color.name); err != nil {
			a.fail(w, "add column", err)
			return
		}
	}
	id, err := a.engine.AddColumn(r.Context(), boardID, req.Name, colorID, int64(req.UserID))
	if err != nil {
		a.fail(w, "add column", err)
		return
	}
	writeJSON(w, 201, map[string]any{"column_id": id})
}

func (a *api) handleRenameColumn(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "boardID")
	if !ok {
		return
	}
	columnID, ok := pathID(w, r, "columnID")
	if !ok {
		return
	}
	var req struct {
		NewName string `json:"newName"`
		UserID  flexID `json:"user_id"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	if err := a.engine.RenameColumn(r.Context(), boardID, columnID, req.NewName, int64(req.UserID)); err != nil {
		a.fail(w, "rename column", err)
		return
	}
	writeJSON(w, 200, map[string]any{"message": "column renamed"})
}

func (a *api) handleDeleteColumn(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "boardID")
	if !ok {
		return
	}
	columnID, ok := pathID(w, r, "columnID")
	if !ok {
		return
	}
	var req struct {
		UserID flexID `json:"user_id"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	if err := a.engine.DeleteColumn(r.Context(), boardID, columnID, int64(req.UserID)); err != nil {
		a.fail(w, "delete column", err)
		return
	}
	writeJSON(w, 200, map[string]any{"message": "column deleted"})
}

func (a *api) handleAddRecord(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "boardID")
	if !ok {
		return
	}
	columnID, ok := pathID(w, r, "columnID")
	if !ok {
		return
	}
	var req struct {
		Text   string `json:"newText"`
		UserID flexID `json:"userId"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	if err := a.engine.AddRecord(r.Context(), boardID, columnID, req.Text, int64(req.UserID)); err != nil {
		a.fail(w, "add record", err)
		return
	}
	writeJSON(w, 200, map[string]any{"message": "text added"})
}

func (a *api) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "boardID")
	if !ok {
		return
	}
	columnID, ok := pathID(w, r, "columnID")
	if !ok {
		return
	}
	var req struct {
		Text string `json:"textToDelete"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	if err := a.engine.DeleteRecord(r.Context(), boardID, columnID, req.Text); err != nil {
		a.fail(w, "delete record", err)
		return
	}
	writeJSON(w, 200, map[string]any{"message": "text deleted"})
}
