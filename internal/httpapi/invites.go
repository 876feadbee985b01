package httpapi

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"retroboard/internal/metrics"
	"retroboard/internal/model"
)

func (a *api) handleInviteByTag(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "boardID")
	if !ok {
		return
	}
	var req struct {
		Tag    string `json:"user_acctag"`
		UserID flexID `json:"user_id"`
	}
	if err := readJSON(w, r, &req); err != nil || strings.TrimSpace(req.Tag) == "" || req.UserID <= 0 {
		writeError(w, 400, "user_acctag and user_id are required")
		return
	}
	err := a.engine.InviteByTag(r.Context(), boardID, int64(req.UserID), strings.TrimSpace(req.Tag))
	if errors.Is(err, model.ErrConflict) {
		// clients expect 400 for an existing member
		writeError(w, 400, messageFor(err))
		return
	}
	if err != nil {
		a.fail(w, "invite by tag", err)
		return
	}
	writeJSON(w, 200, map[string]any{"message": "user invited"})
}

func (a *api) handleCreateInviteLink(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "boardID")
	if !ok {
		return
	}
	var req struct {
		InviterID flexID `json:"inviterId"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	link, err := a.engine.CreateInviteLink(r.Context(), boardID, int64(req.InviterID))
	if err != nil {
		a.fail(w, "create invite link", err)
		return
	}
	writeJSON(w, 200, map[string]any{"inviteLink": link.URL})
}

var invitePage = template.Must(template.New("invite").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{if .BoardName}}Join {{.BoardName}}{{else}}Board invite{{end}}</title>
</head>
<body>
<p>Opening the app{{if .BoardName}} to join <strong>{{.BoardName}}</strong>{{end}}...</p>
<p><a href="{{.WebURL}}">Continue in the browser</a></p>
<script>
window.location.href = {{.AppURL}};
setTimeout(function () { window.location.href = {{.WebURL}}; }, 1500);
</script>
</body>
</html>
`))

// handleInvitePage sends browsers to the app, falling back to the web client.
func (a *api) handleInvitePage(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if _, err := a.engine.ResolveInvite(r.Context(), token); err != nil {
		a.fail(w, "resolve invite", err)
		return
	}
	name, err := a.engine.InviteBoardName(r.Context(), token)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.log.Warn("invite board name", "err", err)
	}
	data := struct {
		BoardName string
		AppURL    string
		WebURL    string
	}{
		BoardName: name,
		AppURL:    a.cfg.AppScheme + "://invite/" + token,
		WebURL:    a.cfg.InviteWebURL + token,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := invitePage.Execute(w, data); err != nil {
		a.log.Error("render invite page", "err", err)
	}
}

func (a *api) handleInviteBoardName(w http.ResponseWriter, r *http.Request) {
	name, err := a.engine.InviteBoardName(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		a.fail(w, "invite board name", err)
		return
	}
	writeJSON(w, 200, map[string]any{"boardName": name})
}

func (a *api) handleRespondInvite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   flexID `json:"userId"`
		Response string `json:"response"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	resp := model.InviteStatus(req.Response)
	if _, err := a.engine.Respond(r.Context(), chi.URLParam(r, "token"), int64(req.UserID), resp); err != nil {
		a.fail(w, "respond to invite", err)
		return
	}
	metrics.InvitesResponded.WithLabelValues(req.Response).Inc()
	writeJSON(w, 200, map[string]any{"message": "Invite " + req.Response})
}
