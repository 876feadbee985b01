package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"retroboard/internal/accounts"
	"retroboard/internal/metrics"
	"retroboard/internal/model"
)

func (a *api) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone    string `json:"user_phone_number"`
		Password string `json:"user_password"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	u, err := a.accounts.Register(r.Context(), req.Phone, req.Password)
	if err != nil {
		a.fail(w, "register", err)
		return
	}
	metrics.RegisterSuccess.Inc()
	writeJSON(w, 201, map[string]any{"message": "user registered", "user_id": u.ID})
}

func (a *api) handleRegisterDirectory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Login    string `json:"ldap_login"`
		Phone    string `json:"user_phone_number"`
		Password string `json:"user_password"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	u, err := a.accounts.RegisterDirectory(r.Context(), req.Login, req.Phone, req.Password)
	if err != nil {
		a.fail(w, "register directory", err)
		return
	}
	metrics.RegisterSuccess.Inc()
	writeJSON(w, 201, map[string]any{"message": "user registered", "user_id": u.ID})
}

func (a *api) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identifier string `json:"identifier"`
		Password   string `json:"user_password"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	u, token, err := a.accounts.Login(r.Context(), strings.TrimSpace(req.Identifier), req.Password)
	if err != nil {
		reason := "error"
		switch {
		case errors.Is(err, model.ErrUnauthorized):
			reason = "invalid_credentials"
		case errors.Is(err, model.ErrBadRequest):
			reason = "bad_request"
		}
		metrics.LoginFailure.WithLabelValues(reason).Inc()
		a.fail(w, "login", err)
		return
	}
	metrics.LoginSuccess.Inc()
	writeJSON(w, 200, map[string]any{"message": "logged in", "user_id": u.ID, "token": token})
}

func (a *api) handleForgot(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Identifier string `json:"identifier"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	id, err := a.accounts.Forgot(r.Context(), strings.TrimSpace(req.Identifier))
	if err != nil {
		a.fail(w, "forgot", err)
		return
	}
	writeJSON(w, 200, map[string]any{"message": "user found", "user_id": id})
}

func (a *api) handleMe(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		writeError(w, 401, "unauthorized")
		return
	}
	u, err := a.accounts.UserFromToken(r.Context(), token)
	if err != nil {
		a.fail(w, "me", err)
		return
	}
	writeJSON(w, 200, u)
}

func (a *api) handleHome(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	u, err := a.accounts.User(r.Context(), id)
	if err != nil {
		a.fail(w, "home", err)
		return
	}
	writeJSON(w, 200, map[string]any{
		"user_name":         u.Name,
		"user_phone_number": u.Phone,
		"avatar_url":        nullable(u.AvatarURL),
	})
}

func (a *api) handleProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	u, err := a.accounts.User(r.Context(), id)
	if err != nil {
		a.fail(w, "profile", err)
		return
	}
	writeJSON(w, 200, map[string]any{
		"user_name":         u.Name,
		"user_phone_number": u.Phone,
		"user_acctag":       u.Tag,
		"avatar_url":        nullable(u.AvatarURL),
	})
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (a *api) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	u, err := a.accounts.User(r.Context(), id)
	if err != nil {
		a.fail(w, "get settings", err)
		return
	}
	writeJSON(w, 200, u)
}

func (a *api) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		Name  *string `json:"user_name"`
		Phone *string `json:"user_phone_number"`
		Tag   *string `json:"user_acctag"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	err := a.accounts.UpdateSettings(r.Context(), id, accounts.Settings{Name: req.Name, Phone: req.Phone, Tag: req.Tag})
	if err != nil {
		a.fail(w, "update settings", err)
		return
	}
	writeJSON(w, 200, map[string]any{"message": "settings updated"})
}

func (a *api) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := a.accounts.Delete(r.Context(), id); err != nil {
		a.fail(w, "delete account", err)
		return
	}
	writeJSON(w, 200, map[string]any{"message": "user deleted"})
}
