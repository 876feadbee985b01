package httpapi

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"retroboard/internal/uploads"
)

const maxUploadBytes = 10 << 20

func (a *api) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	name, ok := a.receiveFile(w, r, "avatar", a.cfg.UploadDir, uploads.AvatarTypes)
	if !ok {
		return
	}
	url := "/uploads/" + name
	if err := a.accounts.SetAvatar(r.Context(), id, url); err != nil {
		_ = os.Remove(filepath.Join(a.cfg.UploadDir, name))
		a.fail(w, "set avatar", err)
		return
	}
	writeJSON(w, 200, map[string]any{"message": "avatar updated", "avatar_url": url})
}

func (a *api) handleUploadPostPicture(w http.ResponseWriter, r *http.Request) {
	name, ok := a.receiveFile(w, r, "post_picture", a.cfg.PostPictureDir, uploads.PostPictureTypes)
	if !ok {
		return
	}
	url := strings.TrimRight(a.cfg.PublicBaseURL, "/") + "/post-pictures/" + name
	writeJSON(w, 200, map[string]any{"message": "picture uploaded", "picture_url": url})
}

func (a *api) receiveFile(w http.ResponseWriter, r *http.Request, field, dir string, allowed []string) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, 400, "invalid multipart form")
		return "", false
	}
	defer r.MultipartForm.RemoveAll()
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		writeError(w, 400, "file not uploaded")
		return "", false
	}
	name, err := uploads.Save(dir, files[0], allowed)
	if err != nil {
		a.fail(w, "save upload", err)
		return "", false
	}
	return name, true
}
